package feedback

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupFeedbackRoutes(router *gin.RouterGroup, controller Controller, authn *middleware.Authenticator) {
	router.GET("/locations/:id/feedback", controller.ListForLocation) // GET /api/v1/locations/:id/feedback

	mine := router.Group("/feedback")
	mine.Use(authn.Required())
	{
		mine.POST("", controller.Create)  // POST /api/v1/feedback
		mine.GET("", controller.ListMine) // GET /api/v1/feedback
	}

	admin := router.Group("/admin/feedback")
	admin.Use(authn.Required(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListAll)                // GET /api/v1/admin/feedback?search=&status=&rating=
		admin.GET("/stats", controller.GetStats)         // GET /api/v1/admin/feedback/stats
		admin.POST("/:id/response", controller.Respond)  // POST /api/v1/admin/feedback/:id/response
		admin.PATCH("/:id/status", controller.SetStatus) // PATCH /api/v1/admin/feedback/:id/status
	}
}
