package bookings

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, authn *middleware.Authenticator) {
	bookings := rg.Group("/bookings")
	bookings.Use(authn.Required())
	{
		bookings.POST("", controller.CreateBooking)            // POST /api/v1/bookings
		bookings.GET("", controller.ListMyBookings)            // GET /api/v1/bookings?limit=10&offset=0
		bookings.GET("/:id", controller.GetBooking)            // GET /api/v1/bookings/:id
		bookings.POST("/:id/cancel", controller.CancelBooking) // POST /api/v1/bookings/:id/cancel
		bookings.GET("/:id/ticket", controller.DownloadTicket) // GET /api/v1/bookings/:id/ticket (PDF)
		bookings.GET("/:id/qr", controller.TicketQR)           // GET /api/v1/bookings/:id/qr (PNG)
	}

	admin := rg.Group("/admin")
	admin.Use(authn.Required(), middleware.RequireAdmin())
	{
		admin.GET("/bookings", controller.ListAllBookings)               // GET /api/v1/admin/bookings?search=&status=
		admin.POST("/bookings/:id/complete", controller.CompleteBooking) // POST /api/v1/admin/bookings/:id/complete
		admin.POST("/tickets/verify", controller.VerifyTicket)           // POST /api/v1/admin/tickets/verify
	}
}

// Booking flow:
// 1. Optionally hold a slot with POST /slots/:id/hold
// 2. Create the booking with POST /bookings (status pending)
// 3. Pay with POST /payments (status confirmed)
// 4. Download the ticket; staff verify its QR at the gate
// 5. The completion job marks the booking completed after its end time
