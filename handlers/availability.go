package handlers

import (
	"net/http"
	"strconv"

	"solace/models"
	"solace/utils"

	"github.com/gin-gonic/gin"
)

// CheckAvailability handles POST /api/availability/check.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	var req struct {
		ProviderID string            `json:"provider_id"`
		Window     models.DateWindow `json:"window"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request body", err.Error())
		return
	}

	result, err := h.Service.CheckAvailability(c.Request.Context(), req.ProviderID, req.Window)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetAddonStock handles GET /api/addons/:id/stock?quantity=N.
func (h *BookingHandler) GetAddonStock(c *gin.Context) {
	quantity := 1
	if raw := c.Query("quantity"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "validation", "quantity must be an integer", "")
			return
		}
		quantity = parsed
	}

	result, err := h.Service.CheckStock(c.Request.Context(), c.Param("id"), quantity, "")
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
