package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"letsparkit/internal/shared/utils/response"
)

// Controller defines the analytics controller interface
type Controller interface {
	GetDashboardAnalytics(c *gin.Context)
}

type controller struct {
	service Service
}

// NewController creates a new analytics controller instance
func NewController(service Service) Controller {
	return &controller{service: service}
}

// GetDashboardAnalytics handles GET /api/v1/admin/dashboard
func (ctrl *controller) GetDashboardAnalytics(c *gin.Context) {
	dashboard, err := ctrl.service.GetDashboardAnalytics(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to retrieve dashboard analytics", nil, err.Error())
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}
