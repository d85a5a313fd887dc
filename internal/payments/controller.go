package payments

import (
	"errors"
	"net/http"
	"time"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller interface {
	Pay(c *gin.Context)
	ListMyPayments(c *gin.Context)
	ListAllPayments(c *gin.Context)
	GetStats(c *gin.Context)
	DownloadReport(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{service: service, validator: validator.New()}
}

func (ctrl *controller) Pay(c *gin.Context) {
	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	caller := Caller{UserID: middleware.GetUserID(c), IsAdmin: middleware.IsAdmin(c)}
	payment, err := ctrl.service.Pay(c.Request.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "Access denied", nil)
		case errors.Is(err, ErrAlreadyPaid):
			response.Error(c, http.StatusConflict, "Booking is not awaiting payment", err.Error())
		case errors.Is(err, parking.ErrInvalidMethod):
			response.Error(c, http.StatusBadRequest, "Invalid payment method", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Payment failed", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, "Payment successful", payment)
}

func (ctrl *controller) ListMyPayments(c *gin.Context) {
	payments := ctrl.service.ListUserPayments(c.Request.Context(), middleware.GetUserID(c))
	response.Success(c, http.StatusOK, "Payments retrieved successfully", response.NewListData(payments, 0, 0))
}

func (ctrl *controller) ListAllPayments(c *gin.Context) {
	payments, err := ctrl.service.ListAllPayments(c.Request.Context(), AdminFilter{
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		if errors.Is(err, ErrInvalidStatusFilter) {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to list payments", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Payments retrieved successfully", response.NewListData(payments, 0, 0))
}

func (ctrl *controller) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "Payment stats retrieved successfully", ctrl.service.Stats(c.Request.Context()))
}

func (ctrl *controller) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()
	payments, err := ctrl.service.ListAllPayments(ctx, AdminFilter{Status: c.Query("status")})
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	pdf, err := RenderReport(payments, computeStats(payments), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to generate report", err.Error())
		return
	}
	c.Header("Content-Disposition", "attachment; filename=payment-report.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
