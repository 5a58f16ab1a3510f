package booking

import (
	"context"
	"testing"
	"time"

	"solace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTimedBooking(store *fakeStore, id, providerID, date, start, end string, status models.BookingStatus) {
	store.seedBooking(
		models.Booking{ID: id, ProviderID: providerID, Status: status, CreatedAt: time.Now().UTC()},
		[]models.BookingDate{{BookingID: id, Date: date, StartTime: start, EndTime: end}},
		nil,
	)
}

func TestCheckAvailabilityFreeWindow(t *testing.T) {
	engine, _, _ := newTestEngine()

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{StartDate: "2025-06-10"})
	require.NoError(t, err)
	assert.True(t, result.Available)
	assert.Zero(t, result.Conflicts)
}

func TestCheckAvailabilityAdjacentWindowsDoNotConflict(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "09:00", "11:00", models.StatusConfirmed)

	// Back to back with the existing reservation.
	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{
		StartDate: "2025-06-10", StartTime: "11:00", EndTime: "13:00",
	})
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailabilityOverlappingWindowConflicts(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "09:00", "11:00", models.StatusConfirmed)

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{
		StartDate: "2025-06-10", StartTime: "10:00", EndTime: "12:00",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 1, result.Conflicts)
	assert.Contains(t, result.Reason, "2025-06-10")
}

func TestCheckAvailabilityFullDayBlocksTimedWindow(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "", "", models.StatusPending)

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{
		StartDate: "2025-06-10", StartTime: "14:00", EndTime: "15:00",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailabilityTimedBookingBlocksFullDayWindow(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "09:00", "10:00", models.StatusConfirmed)

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{StartDate: "2025-06-10"})
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailabilityIgnoresTerminalBookings(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "", "", models.StatusCancelled)
	seedTimedBooking(store, "b-2", "prov-1", "2025-06-10", "", "", models.StatusCompleted)

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{StartDate: "2025-06-10"})
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailabilityIgnoresOtherProviders(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-2", "2025-06-10", "", "", models.StatusConfirmed)

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{StartDate: "2025-06-10"})
	require.NoError(t, err)
	assert.True(t, result.Available)
}

func TestCheckAvailabilityBlackoutConflicts(t *testing.T) {
	engine, store, _ := newTestEngine()
	store.blackouts = append(store.blackouts, models.ProviderBlackout{
		ProviderID: "prov-1", Date: "2025-06-10", Reason: "staff holiday",
	})

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{
		StartDate: "2025-06-10", StartTime: "09:00", EndTime: "10:00",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Contains(t, result.Reason, "unavailable on 2025-06-10")
}

func TestCheckAvailabilityRangeTouchingBlackout(t *testing.T) {
	engine, store, _ := newTestEngine()
	store.blackouts = append(store.blackouts, models.ProviderBlackout{ProviderID: "prov-1", Date: "2025-06-12"})

	result, err := engine.CheckAvailability(context.Background(), "prov-1", models.DateWindow{
		StartDate: "2025-06-10", EndDate: "2025-06-14",
	})
	require.NoError(t, err)
	assert.False(t, result.Available)
}

func TestCheckAvailabilityValidation(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	cases := []struct {
		name       string
		providerID string
		window     models.DateWindow
	}{
		{"missing provider", "", models.DateWindow{StartDate: "2025-06-10"}},
		{"missing start date", "prov-1", models.DateWindow{}},
		{"malformed date", "prov-1", models.DateWindow{StartDate: "10/06/2025"}},
		{"end before start", "prov-1", models.DateWindow{StartDate: "2025-06-10", EndDate: "2025-06-09"}},
		{"lone start time", "prov-1", models.DateWindow{StartDate: "2025-06-10", StartTime: "09:00"}},
		{"malformed time", "prov-1", models.DateWindow{StartDate: "2025-06-10", StartTime: "9am", EndTime: "11:00"}},
		{"end time not after start", "prov-1", models.DateWindow{StartDate: "2025-06-10", StartTime: "11:00", EndTime: "11:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := engine.CheckAvailability(ctx, tc.providerID, tc.window)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestDateRangesOverlap(t *testing.T) {
	assert.True(t, dateRangesOverlap("2025-06-10", "2025-06-12", "2025-06-12", "2025-06-12"))
	assert.True(t, dateRangesOverlap("2025-06-10", "2025-06-10", "2025-06-10", "2025-06-10"))
	assert.False(t, dateRangesOverlap("2025-06-10", "2025-06-11", "2025-06-12", "2025-06-12"))
}

func TestTimesOverlap(t *testing.T) {
	assert.False(t, timesOverlap("09:00", "11:00", "11:00", "13:00"))
	assert.True(t, timesOverlap("09:00", "11:00", "10:00", "12:00"))
	assert.True(t, timesOverlap("", "", "10:00", "12:00"))
	assert.True(t, timesOverlap("09:00", "11:00", "", ""))
}
