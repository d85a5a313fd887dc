package analytics

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller Controller, authn *middleware.Authenticator) {
	admin := rg.Group("/admin")
	admin.Use(authn.Required())
	admin.Use(middleware.RequireAdmin())

	// Dashboard & Overview
	admin.GET("/dashboard", controller.GetDashboardAnalytics)
}
