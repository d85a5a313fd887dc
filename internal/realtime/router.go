package realtime

import "github.com/gin-gonic/gin"

func SetupRealtimeRoutes(rg *gin.RouterGroup, controller *Controller) {
	rg.GET("/ws/locations/:id", controller.StreamLocation) // GET /api/v1/ws/locations/:id
}
