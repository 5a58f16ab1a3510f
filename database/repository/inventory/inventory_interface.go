package inventoryRepo

import (
	"context"

	"solace/models"
)

// InventoryRepository is the data-access contract for the addon catalog and
// the stock event ledger.
type InventoryRepository interface {
	GetAddon(ctx context.Context, id string) (*models.Addon, error)

	// AdjustStock applies a manual signed correction to a physical addon's
	// counter and appends an adjust event. Negative deltas are conditional:
	// the counter never goes below zero.
	AdjustStock(ctx context.Context, addonID string, delta int, reason string) (*models.Addon, error)

	// EventsForAddon returns the append-only ledger for one addon, oldest first.
	EventsForAddon(ctx context.Context, addonID string) ([]models.StockEvent, error)
}
