package users

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.RouterGroup, controller Controller, authn *middleware.Authenticator) {
	adminUsers := router.Group("/admin/users")
	adminUsers.Use(authn.Required(), middleware.RequireAdmin())
	{
		adminUsers.GET("", controller.ListUsers)   // GET /api/v1/admin/users?search=
		adminUsers.GET("/:id", controller.GetUser) // GET /api/v1/admin/users/:id
	}
}
