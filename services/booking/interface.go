package booking

import (
	"context"
	"time"

	availabilityRepo "solace/database/repository/availability"
	bookingRepo "solace/database/repository/booking"
	catalogRepo "solace/database/repository/catalog"
	inventoryRepo "solace/database/repository/inventory"
	"solace/models"
	"solace/utils"
)

// BookingEngine is the entry point for the booking and resource reservation
// subsystem: creation, availability and stock checks, lifecycle transitions,
// and the stale-hold sweep.
type BookingEngine interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.BookingResponse, error)
	GetBooking(ctx context.Context, id string) (*models.BookingDetail, error)
	ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)
	CheckAvailability(ctx context.Context, providerID string, window models.DateWindow) (*models.AvailabilityResult, error)
	CheckStock(ctx context.Context, addonID string, quantity int, excludeBookingID string) (*models.StockResult, error)
	UpdateStatus(ctx context.Context, req models.StatusUpdateRequest) (*models.StatusUpdateResult, error)
	SweepStalePending(ctx context.Context) (int, error)
}

// DefaultBookingEngine is the production booking engine.
type DefaultBookingEngine struct {
	Repo      bookingRepo.BookingRepository
	Inventory inventoryRepo.InventoryRepository
	Blackouts availabilityRepo.AvailabilityRepository
	Catalog   catalogRepo.CatalogRepository

	// HoldTTL overrides the configured soft-hold TTL when non-zero.
	HoldTTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (e *DefaultBookingEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now().UTC()
}

func (e *DefaultBookingEngine) holdTTL() time.Duration {
	if e.HoldTTL > 0 {
		return e.HoldTTL
	}
	return utils.HoldTTL()
}
