package payments

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller Controller, authn *middleware.Authenticator) {
	payments := router.Group("/payments")
	payments.Use(authn.Required())
	{
		payments.POST("", controller.Pay)           // POST /api/v1/payments
		payments.GET("", controller.ListMyPayments) // GET /api/v1/payments
	}

	admin := router.Group("/admin/payments")
	admin.Use(authn.Required(), middleware.RequireAdmin())
	{
		admin.GET("", controller.ListAllPayments)       // GET /api/v1/admin/payments?search=&status=
		admin.GET("/stats", controller.GetStats)        // GET /api/v1/admin/payments/stats
		admin.GET("/report", controller.DownloadReport) // GET /api/v1/admin/payments/report?status=
	}
}
