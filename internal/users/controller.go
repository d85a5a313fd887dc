package users

import (
	"errors"
	"net/http"

	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	ListUsers(c *gin.Context)
	GetUser(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// ListUsers returns the directory filtered by search, with role counts
func (ctrl *controller) ListUsers(c *gin.Context) {
	resp, err := ctrl.service.ListUsers(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list users", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Users retrieved successfully", resp)
}

func (ctrl *controller) GetUser(c *gin.Context) {
	resp, err := ctrl.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get user", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "User retrieved successfully", resp)
}
