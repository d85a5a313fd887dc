package feedback

import (
	"errors"
	"net/http"
	"strconv"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
	ListForLocation(c *gin.Context)
	ListAll(c *gin.Context)
	Respond(c *gin.Context)
	SetStatus(c *gin.Context)
	GetStats(c *gin.Context)
}

type controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) Controller {
	return &controller{service: service, validator: validator.New()}
}

// bind decodes and validates a JSON body, writing the error response itself
func (ctrl *controller) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	if err := ctrl.validator.Struct(req); err != nil {
		response.Error(c, http.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	return true
}

func (ctrl *controller) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	if !ctrl.bind(c, &req) {
		return
	}

	caller := Caller{
		UserID:  middleware.GetUserID(c),
		Name:    middleware.GetUserName(c),
		IsAdmin: middleware.IsAdmin(c),
	}
	entry, err := ctrl.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		handleError(c, err, "Failed to submit feedback")
		return
	}
	response.Success(c, http.StatusCreated, "Feedback submitted successfully", entry)
}

func (ctrl *controller) ListMine(c *gin.Context) {
	entries := ctrl.service.ListMine(c.Request.Context(), middleware.GetUserID(c))
	response.Success(c, http.StatusOK, "Feedback retrieved successfully", response.NewListData(entries, 0, 0))
}

func (ctrl *controller) ListForLocation(c *gin.Context) {
	entries, err := ctrl.service.ListForLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err, "Failed to list feedback")
		return
	}
	response.Success(c, http.StatusOK, "Feedback retrieved successfully", response.NewListData(entries, 0, 0))
}

func (ctrl *controller) ListAll(c *gin.Context) {
	filter := AdminFilter{Search: c.Query("search"), Status: c.Query("status")}
	if raw := c.Query("rating"); raw != "" && raw != "all" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			response.Error(c, http.StatusBadRequest, "Rating filter must be between 1 and 5", raw)
			return
		}
		filter.Rating = rating
	}

	entries, err := ctrl.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		handleError(c, err, "Failed to list feedback")
		return
	}
	response.Success(c, http.StatusOK, "Feedback retrieved successfully", response.NewListData(entries, 0, 0))
}

func (ctrl *controller) Respond(c *gin.Context) {
	var req AdminResponseRequest
	if !ctrl.bind(c, &req) {
		return
	}
	entry, err := ctrl.service.Respond(c.Request.Context(), c.Param("id"), req.Response)
	if err != nil {
		handleError(c, err, "Failed to save response")
		return
	}
	response.Success(c, http.StatusOK, "Response saved successfully", entry)
}

func (ctrl *controller) SetStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !ctrl.bind(c, &req) {
		return
	}
	entry, err := ctrl.service.SetStatus(c.Request.Context(), c.Param("id"), parking.FeedbackStatus(req.Status))
	if err != nil {
		handleError(c, err, "Failed to update feedback status")
		return
	}
	response.Success(c, http.StatusOK, "Feedback status updated successfully", entry)
}

func (ctrl *controller) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "Feedback stats retrieved successfully", ctrl.service.Stats(c.Request.Context()))
}

func handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, parking.ErrFeedbackNotFound):
		response.Error(c, http.StatusNotFound, "Feedback not found", nil)
	case errors.Is(err, parking.ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "Booking not found", nil)
	case errors.Is(err, parking.ErrLocationNotFound):
		response.Error(c, http.StatusNotFound, "Location not found", nil)
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, parking.ErrInvalidRating),
		errors.Is(err, parking.ErrInvalidStatus),
		errors.Is(err, ErrInvalidStatusFilter):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, err.Error())
	}
}
