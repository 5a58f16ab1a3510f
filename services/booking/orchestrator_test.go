package booking

import (
	"context"
	"strings"
	"testing"
	"time"

	"solace/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() models.BookingRequest {
	return models.BookingRequest{
		PackageID:     "pkg-1",
		CustomerName:  "Jane Mwangi",
		CustomerEmail: "jane@example.com",
		TotalAmount:   1500,
		Dates: []models.BookingDateInput{
			{Date: "2025-06-10", StartTime: "09:00", EndTime: "11:00", EventType: "burial", Location: "Evergreen grounds"},
		},
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	engine, store, now := newTestEngine()

	resp, err := engine.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, models.StatusPending, resp.Status)
	assert.Equal(t, "Evergreen Memorial", resp.Provider.Name)
	assert.True(t, strings.HasPrefix(resp.Reference, "SOL-"))

	stored := store.bookings[resp.BookingID]
	require.NotNil(t, stored)
	assert.Equal(t, "prov-1", stored.ProviderID)
	assert.Equal(t, resp.Reference, stored.Reference)
	assert.Equal(t, now, stored.CreatedAt)

	require.Len(t, store.dates, 1)
	assert.Equal(t, resp.BookingID, store.dates[0].BookingID)
	assert.Equal(t, "2025-06-10", store.dates[0].Date)
}

func TestCreateBookingWithPhysicalAddonRecordsHold(t *testing.T) {
	engine, store, _ := newTestEngine()
	store.addons["addon-1"] = &models.Addon{ID: "addon-1", Name: "Casket Spray", Price: 80, StockQuantity: intPtr(4)}

	req := validRequest()
	req.Addons = []models.BookingAddonInput{
		{AddonID: "addon-1", Name: "Casket Spray", Price: 80, Quantity: 2},
		{Name: "Custom dove release", Price: 150}, // ad hoc line, quantity defaults to 1
	}

	resp, err := engine.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, store.addonLines, 2)
	assert.Equal(t, 1, store.addonLines[1].Quantity)

	// The hold is an event only; the counter is untouched until confirmation.
	assert.Equal(t, 4, *store.addons["addon-1"].StockQuantity)
	require.Len(t, store.events, 1)
	event := store.events[0]
	assert.Equal(t, models.StockEventReserve, event.Type)
	assert.Equal(t, resp.BookingID, event.BookingID)
	assert.Equal(t, 2, event.Quantity)
	assert.Zero(t, event.StockDelta)
}

func TestCreateBookingRejectsDateConflictAtomically(t *testing.T) {
	engine, store, _ := newTestEngine()
	seedTimedBooking(store, "b-1", "prov-1", "2025-06-10", "09:00", "11:00", models.StatusConfirmed)
	before := len(store.bookings)

	req := validRequest()
	req.Dates[0].StartTime = "10:00"
	req.Dates[0].EndTime = "12:00"

	_, err := engine.CreateBooking(context.Background(), req)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Message, "2025-06-10")

	// Nothing persisted for the rejected request.
	assert.Len(t, store.bookings, before)
	assert.Len(t, store.dates, 1)
	assert.Empty(t, store.events)
}

func TestCreateBookingRejectsOversell(t *testing.T) {
	engine, store, _ := newTestEngine()
	store.addons["addon-1"] = &models.Addon{ID: "addon-1", Name: "Casket Spray", StockQuantity: intPtr(1)}

	first := validRequest()
	first.Addons = []models.BookingAddonInput{{AddonID: "addon-1", Name: "Casket Spray", Quantity: 1}}
	_, err := engine.CreateBooking(context.Background(), first)
	require.NoError(t, err)

	// Same addon, different day, while the first hold is live.
	second := validRequest()
	second.Dates = []models.BookingDateInput{{Date: "2025-06-11"}}
	second.Addons = []models.BookingAddonInput{{AddonID: "addon-1", Name: "Casket Spray", Quantity: 1}}

	_, err = engine.CreateBooking(context.Background(), second)
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Message, "Casket Spray")
	assert.Len(t, store.bookings, 1)
}

func TestCreateBookingAdmitsAfterHoldExpires(t *testing.T) {
	engine, store, now := newTestEngine()
	store.addons["addon-1"] = &models.Addon{ID: "addon-1", Name: "Casket Spray", StockQuantity: intPtr(1)}
	seedAddonHold(store, "b-stale", "addon-1", 1, models.StatusPending, now.Add(-30*time.Minute))

	req := validRequest()
	req.Addons = []models.BookingAddonInput{{AddonID: "addon-1", Name: "Casket Spray", Quantity: 1}}

	_, err := engine.CreateBooking(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateBookingLosingWriteRaceIsRejected(t *testing.T) {
	engine, store, _ := newTestEngine()
	// The guard passes, but a sibling transaction wrote the same lock
	// documents first and this transaction aborted at commit.
	store.createRace = true

	_, err := engine.CreateBooking(context.Background(), validRequest())
	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Contains(t, conflictErr.Message, "retry")

	// The aborted transaction left nothing behind.
	assert.Empty(t, store.bookings)
	assert.Empty(t, store.dates)
	assert.Empty(t, store.events)
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	engine, _, _ := newTestEngine()

	req := validRequest()
	req.PackageID = "pkg-missing"

	_, err := engine.CreateBooking(context.Background(), req)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "package", notFound.Resource)
}

func TestCreateBookingUnknownAddon(t *testing.T) {
	engine, _, _ := newTestEngine()

	req := validRequest()
	req.Addons = []models.BookingAddonInput{{AddonID: "addon-missing", Name: "Casket Spray"}}

	_, err := engine.CreateBooking(context.Background(), req)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "addon", notFound.Resource)
}

func TestCreateBookingValidation(t *testing.T) {
	engine, _, _ := newTestEngine()
	ctx := context.Background()

	mutations := []struct {
		name   string
		mutate func(*models.BookingRequest)
	}{
		{"missing package", func(r *models.BookingRequest) { r.PackageID = "" }},
		{"missing customer name", func(r *models.BookingRequest) { r.CustomerName = "" }},
		{"missing customer email", func(r *models.BookingRequest) { r.CustomerEmail = "" }},
		{"no dates", func(r *models.BookingRequest) { r.Dates = nil }},
		{"negative total", func(r *models.BookingRequest) { r.TotalAmount = -1 }},
		{"bad date format", func(r *models.BookingRequest) { r.Dates[0].Date = "June 10" }},
		{"negative addon quantity", func(r *models.BookingRequest) {
			r.Addons = []models.BookingAddonInput{{Name: "Casket Spray", Quantity: -2}}
		}},
		{"addon missing name", func(r *models.BookingRequest) {
			r.Addons = []models.BookingAddonInput{{AddonID: "addon-1"}}
		}},
	}
	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := engine.CreateBooking(ctx, req)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestGetBookingReturnsFullGraph(t *testing.T) {
	engine, store, _ := newTestEngine()
	store.addons["addon-1"] = &models.Addon{ID: "addon-1", Name: "Casket Spray", StockQuantity: intPtr(4)}

	req := validRequest()
	req.Addons = []models.BookingAddonInput{{AddonID: "addon-1", Name: "Casket Spray", Quantity: 1}}
	resp, err := engine.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	detail, err := engine.GetBooking(context.Background(), resp.BookingID)
	require.NoError(t, err)
	assert.Equal(t, resp.BookingID, detail.Booking.ID)
	assert.Len(t, detail.Dates, 1)
	assert.Len(t, detail.Addons, 1)
}

func TestGetBookingNotFound(t *testing.T) {
	engine, _, _ := newTestEngine()

	_, err := engine.GetBooking(context.Background(), "nope")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestListProviderBookings(t *testing.T) {
	engine, store, now := newTestEngine()
	store.seedBooking(models.Booking{ID: "b-1", ProviderID: "prov-1", Status: models.StatusPending, CreatedAt: now}, nil, nil)
	store.seedBooking(models.Booking{ID: "b-2", ProviderID: "prov-2", Status: models.StatusPending, CreatedAt: now}, nil, nil)

	bookings, err := engine.ListProviderBookings(context.Background(), "prov-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "b-1", bookings[0].ID)
}
