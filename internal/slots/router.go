package slots

import (
	"letsparkit/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupSlotRoutes(router *gin.RouterGroup, controller Controller, authn *middleware.Authenticator) {
	// Public listing; a signed-in caller also sees which holds are theirs
	router.GET("/locations/:id/slots", authn.Optional(), controller.ListSlots) // GET /api/v1/locations/:id/slots?type=&available=

	holds := router.Group("")
	holds.Use(authn.Required())
	{
		holds.POST("/slots/:id/hold", controller.HoldSlot)     // POST /api/v1/slots/:id/hold
		holds.DELETE("/holds/:holdId", controller.ReleaseHold) // DELETE /api/v1/holds/:holdId
	}
}
