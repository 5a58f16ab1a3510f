package booking

import (
	"context"
	"fmt"

	"solace/models"
)

// GetBooking returns the full booking graph.
func (e *DefaultBookingEngine) GetBooking(ctx context.Context, id string) (*models.BookingDetail, error) {
	if id == "" {
		return nil, &ValidationError{Message: "booking id is required"}
	}

	record, err := e.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "booking", ID: id}
	}

	dates, err := e.Repo.DatesForBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking dates: %w", err)
	}
	addons, err := e.Repo.AddonsForBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking addons: %w", err)
	}

	return &models.BookingDetail{Booking: *record, Dates: dates, Addons: addons}, nil
}

// ListProviderBookings returns every booking for a provider.
func (e *DefaultBookingEngine) ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	if providerID == "" {
		return nil, &ValidationError{Message: "provider id is required"}
	}
	bookings, err := e.Repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
