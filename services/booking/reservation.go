package booking

import (
	"context"
	"fmt"

	"solace/models"
)

// CheckStock decides whether the requested quantity of an addon can be
// admitted. Availability is stock minus the quantities soft-held by pending
// bookings still inside the hold TTL; stale pending holds are excluded at
// read time, so an abandoned booking never locks stock permanently.
func (e *DefaultBookingEngine) CheckStock(ctx context.Context, addonID string, quantity int, excludeBookingID string) (*models.StockResult, error) {
	if addonID == "" {
		return nil, &ValidationError{Message: "addon_id is required"}
	}
	if quantity < 1 {
		return nil, &ValidationError{Message: "quantity must be at least 1"}
	}

	addon, err := e.Inventory.GetAddon(ctx, addonID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch addon: %w", err)
	}
	if addon == nil {
		return nil, &NotFoundError{Resource: "addon", ID: addonID}
	}

	// Service-type addons have no counter and are treated as unlimited.
	if !addon.IsPhysical() {
		return &models.StockResult{Available: true, Unlimited: true}, nil
	}

	pendingCutoff := e.now().Add(-e.holdTTL())
	reserved, err := e.Repo.ReservedQuantity(ctx, addonID, excludeBookingID, pendingCutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to sum reserved quantity: %w", err)
	}

	total := *addon.StockQuantity
	available := total - reserved
	return &models.StockResult{
		Available:      available >= quantity,
		AvailableStock: available,
		TotalStock:     total,
		Reserved:       reserved,
	}, nil
}
