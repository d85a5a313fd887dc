package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"
	"letsparkit/internal/slots"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	repo      Repository
	tickets   *Tickets
	validator *validator.Validate
}

func NewController(service Service, repo Repository, tickets *Tickets) *Controller {
	return &Controller{
		service:   service,
		repo:      repo,
		tickets:   tickets,
		validator: validator.New(),
	}
}

func callerFrom(ctx *gin.Context) Caller {
	return Caller{
		UserID:  middleware.GetUserID(ctx),
		Name:    middleware.GetUserName(ctx),
		IsAdmin: middleware.IsAdmin(ctx),
	}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), callerFrom(ctx), req)
	if err != nil {
		c.handleError(ctx, err, "Failed to create booking")
		return
	}
	response.Success(ctx, http.StatusCreated, "Booking created successfully", booking)
}

// ListMyBookings handles GET /api/v1/bookings?limit=&offset=
func (c *Controller) ListMyBookings(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	bookings := c.service.ListUserBookings(ctx.Request.Context(), middleware.GetUserID(ctx))
	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", response.NewListData(bookings, limit, offset))
}

// GetBooking handles GET /api/v1/bookings/:id
func (c *Controller) GetBooking(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), callerFrom(ctx), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}
	response.Success(ctx, http.StatusOK, "Booking retrieved successfully", booking)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel
func (c *Controller) CancelBooking(ctx *gin.Context) {
	booking, err := c.service.CancelBooking(ctx.Request.Context(), callerFrom(ctx), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to cancel booking")
		return
	}
	response.Success(ctx, http.StatusOK, "Booking cancelled successfully", booking)
}

// DownloadTicket handles GET /api/v1/bookings/:id/ticket
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), callerFrom(ctx), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}

	pdf, err := c.tickets.PDF(*booking)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to generate ticket", err.Error())
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename=ticket-"+booking.ID+".pdf")
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

// TicketQR handles GET /api/v1/bookings/:id/qr
func (c *Controller) TicketQR(ctx *gin.Context) {
	booking, err := c.service.GetBooking(ctx.Request.Context(), callerFrom(ctx), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to get booking")
		return
	}

	png, err := c.tickets.QR(*booking)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to generate QR code", err.Error())
		return
	}
	ctx.Data(http.StatusOK, "image/png", png)
}

// VerifyTicket handles POST /api/v1/admin/tickets/verify
func (c *Controller) VerifyTicket(ctx *gin.Context) {
	var req VerifyTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	result := c.tickets.Verify(c.repo, req.Payload)
	message := "Ticket is valid"
	if !result.Valid {
		message = "Ticket is not valid"
	}
	response.Success(ctx, http.StatusOK, message, result)
}

// ListAllBookings handles GET /api/v1/admin/bookings?search=&status=
func (c *Controller) ListAllBookings(ctx *gin.Context) {
	bookings, err := c.service.ListAllBookings(ctx.Request.Context(), AdminFilter{
		Search: ctx.Query("search"),
		Status: ctx.Query("status"),
	})
	if err != nil {
		c.handleError(ctx, err, "Failed to list bookings")
		return
	}
	response.Success(ctx, http.StatusOK, "Bookings retrieved successfully", response.NewListData(bookings, 0, 0))
}

// CompleteBooking handles POST /api/v1/admin/bookings/:id/complete
func (c *Controller) CompleteBooking(ctx *gin.Context) {
	booking, err := c.service.CompleteBooking(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		c.handleError(ctx, err, "Failed to complete booking")
		return
	}
	response.Success(ctx, http.StatusOK, "Booking completed successfully", booking)
}

func (c *Controller) handleError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, parking.ErrBookingNotFound):
		response.Error(ctx, http.StatusNotFound, "Booking not found", nil)
	case errors.Is(err, parking.ErrLocationNotFound):
		response.Error(ctx, http.StatusNotFound, "Location not found", nil)
	case errors.Is(err, parking.ErrSlotNotFound):
		response.Error(ctx, http.StatusNotFound, "Slot not found", nil)
	case errors.Is(err, ErrForbidden):
		response.Error(ctx, http.StatusForbidden, "Access denied", nil)
	case errors.Is(err, parking.ErrSlotUnavailable), errors.Is(err, slots.ErrSlotHeld):
		response.Error(ctx, http.StatusConflict, "Slot is not available", err.Error())
	case errors.Is(err, parking.ErrInvalidTransition):
		response.Error(ctx, http.StatusConflict, "Booking cannot change to that status", err.Error())
	case errors.Is(err, parking.ErrInvalidDuration),
		errors.Is(err, ErrInvalidStartTime),
		errors.Is(err, ErrInvalidStatusFilter):
		response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
	default:
		response.Error(ctx, http.StatusInternalServerError, fallback, err.Error())
	}
}
