package handlers

import (
	"net/http"

	inventoryRepo "solace/database/repository/inventory"
	"solace/models"
	"solace/services/provider"
	"solace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProviderHandler exposes blackout-date management and manual stock
// adjustment for providers.
type ProviderHandler struct {
	Availability provider.AvailabilityService
	Inventory    inventoryRepo.InventoryRepository
	Logger       *zap.Logger
}

// NewProviderHandler constructs a ProviderHandler.
func NewProviderHandler(availability provider.AvailabilityService, inventory inventoryRepo.InventoryRepository, logger *zap.Logger) *ProviderHandler {
	return &ProviderHandler{Availability: availability, Inventory: inventory, Logger: logger}
}

// AddBlackouts handles POST /api/providers/:id/blackouts.
func (h *ProviderHandler) AddBlackouts(c *gin.Context) {
	var req struct {
		Entries []models.BlackoutInput `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request body", err.Error())
		return
	}

	count, err := h.Availability.AddBlackouts(c.Request.Context(), c.Param("id"), req.Entries)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": count})
}

// RemoveBlackouts handles DELETE /api/providers/:id/blackouts.
func (h *ProviderHandler) RemoveBlackouts(c *gin.Context) {
	var req struct {
		Entries []models.BlackoutInput `json:"entries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request body", err.Error())
		return
	}

	count, err := h.Availability.RemoveBlackouts(c.Request.Context(), c.Param("id"), req.Entries)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"affected": count})
}

// ListBlackouts handles GET /api/providers/:id/blackouts.
func (h *ProviderHandler) ListBlackouts(c *gin.Context) {
	blackouts, err := h.Availability.ListBlackouts(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blackouts": blackouts})
}

// AdjustStock handles POST /api/addons/:id/adjust-stock. Manual corrections
// append an adjust event so the ledger stays reconstructable.
func (h *ProviderHandler) AdjustStock(c *gin.Context) {
	var req struct {
		Delta  int    `json:"delta"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "validation", "invalid request body", err.Error())
		return
	}
	if req.Delta == 0 {
		utils.JSONError(c, http.StatusBadRequest, "validation", "delta cannot be zero", "")
		return
	}

	addon, err := h.Inventory.AdjustStock(c.Request.Context(), c.Param("id"), req.Delta, req.Reason)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, addon)
}

// GetStockEvents handles GET /api/addons/:id/events.
func (h *ProviderHandler) GetStockEvents(c *gin.Context) {
	events, err := h.Inventory.EventsForAddon(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
