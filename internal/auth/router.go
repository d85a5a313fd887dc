package auth

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles auth-related routes
type Router struct {
	controller *Controller
	authn      *middleware.Authenticator
}

// NewRouter creates a new auth router
func NewRouter(controller *Controller, authn *middleware.Authenticator) *Router {
	return &Router{
		controller: controller,
		authn:      authn,
	}
}

// SetupRoutes registers all auth routes
func (authRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		auth.POST("/register", authRouter.controller.Register)
		auth.POST("/login", authRouter.controller.Login)
		auth.POST("/refresh", authRouter.controller.RefreshToken)

		// Protected routes (authentication required)
		protected := auth.Group("")
		protected.Use(authRouter.authn.Required())
		{
			protected.POST("/logout", authRouter.controller.Logout)
			protected.GET("/me", authRouter.controller.GetMe)
		}
	}
}
