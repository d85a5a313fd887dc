package locations

import (
	"errors"
	"net/http"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{service: service, validator: validator.New()}
}

// ListLocations handles GET /api/v1/locations?search=&city=
func (c *Controller) ListLocations(ctx *gin.Context) {
	locations := c.service.List(ctx.Request.Context(), Filter{
		Search: ctx.Query("search"),
		City:   ctx.Query("city"),
	})
	response.Success(ctx, http.StatusOK, "Locations retrieved successfully", response.NewListData(locations, 0, 0))
}

// GetLocation handles GET /api/v1/locations/:id
func (c *Controller) GetLocation(ctx *gin.Context) {
	loc, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, parking.ErrLocationNotFound) {
			response.Error(ctx, http.StatusNotFound, "Location not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to get location", err.Error())
		return
	}
	response.Success(ctx, http.StatusOK, "Location retrieved successfully", loc)
}

// UpdateLocation handles PUT /api/v1/admin/locations/:id
func (c *Controller) UpdateLocation(ctx *gin.Context) {
	var req UpdateLocationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	loc, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		if errors.Is(err, parking.ErrLocationNotFound) {
			response.Error(ctx, http.StatusNotFound, "Location not found", nil)
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to update location", err.Error())
		return
	}
	response.Success(ctx, http.StatusOK, "Location updated successfully", loc)
}
