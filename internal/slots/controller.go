package slots

import (
	"errors"
	"net/http"
	"strconv"

	"letsparkit/internal/parking"
	"letsparkit/internal/shared/middleware"
	"letsparkit/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	ListSlots(c *gin.Context)
	HoldSlot(c *gin.Context)
	ReleaseHold(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListSlots(c *gin.Context) {
	var filter SlotFilter
	if t := c.Query("type"); t != "" {
		filter.Type = parking.SlotType(t)
		if !filter.Type.IsValid() {
			response.Error(c, http.StatusBadRequest, "Invalid slot type", t)
			return
		}
	}
	if a := c.Query("available"); a != "" {
		available, err := strconv.ParseBool(a)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid available flag", err.Error())
			return
		}
		filter.Available = &available
	}

	slots, err := ctrl.service.ListSlots(c.Request.Context(), c.Param("id"), middleware.GetUserID(c), filter)
	if err != nil {
		if errors.Is(err, parking.ErrLocationNotFound) {
			response.Error(c, http.StatusNotFound, "Location not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to list slots", err.Error())
		return
	}
	response.Success(c, http.StatusOK, "Slots retrieved successfully", response.NewListData(slots, 0, 0))
}

func (ctrl *controller) HoldSlot(c *gin.Context) {
	hold, err := ctrl.service.HoldSlot(c.Request.Context(), c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrSlotNotFound):
			response.Error(c, http.StatusNotFound, "Slot not found", nil)
		case errors.Is(err, parking.ErrSlotUnavailable), errors.Is(err, ErrSlotHeld):
			response.Error(c, http.StatusConflict, "Slot is not available", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to hold slot", err.Error())
		}
		return
	}
	response.Success(c, http.StatusCreated, "Slot held successfully", hold)
}

func (ctrl *controller) ReleaseHold(c *gin.Context) {
	err := ctrl.service.ReleaseHold(c.Request.Context(), c.Param("holdId"), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, ErrHoldNotFound):
			response.Error(c, http.StatusNotFound, "Hold not found or expired", nil)
		case errors.Is(err, ErrNotHoldOwner):
			response.Error(c, http.StatusForbidden, "Hold belongs to another user", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to release hold", err.Error())
		}
		return
	}
	response.Success(c, http.StatusOK, "Hold released successfully", nil)
}
