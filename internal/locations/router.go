package locations

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupLocationRoutes(rg *gin.RouterGroup, controller *Controller, authn *middleware.Authenticator) {
	// Public browsing
	locations := rg.Group("/locations")
	{
		locations.GET("", controller.ListLocations)   // GET /api/v1/locations?search=&city=
		locations.GET("/:id", controller.GetLocation) // GET /api/v1/locations/:id
	}

	admin := rg.Group("/admin/locations")
	admin.Use(authn.Required(), middleware.RequireAdmin())
	{
		admin.PUT("/:id", controller.UpdateLocation) // PUT /api/v1/admin/locations/:id
	}
}
