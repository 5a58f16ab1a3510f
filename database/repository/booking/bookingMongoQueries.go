package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"solace/models"

	"go.mongodb.org/mongo-driver/bson"
)

var activeStatuses = []models.BookingStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusInProgress,
}

// ActiveDatesByProvider returns every date row owned by a booking in a
// non-terminal status for the given provider.
func (repo *MongoBookingRepo) ActiveDatesByProvider(ctx context.Context, providerID string) ([]models.BookingDate, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"status":      bson.M{"$in": activeStatuses},
	}
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding active bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding active bookings: %w", err)
	}
	if len(bookings) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	dateCursor, err := repo.dateColl.Find(ctxWithTimeout, bson.M{"booking_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("error finding dates for active bookings: %w", err)
	}
	defer dateCursor.Close(ctxWithTimeout)

	var dates []models.BookingDate
	if err := dateCursor.All(ctxWithTimeout, &dates); err != nil {
		return nil, fmt.Errorf("error decoding active booking dates: %w", err)
	}
	return dates, nil
}

// ReservedQuantity sums quantities of the given addon held by pending
// bookings created after pendingCutoff, excluding excludeBookingID.
// Confirmed bookings are not counted here: confirmation already moved their
// quantity into the decremented stock counter.
func (repo *MongoBookingRepo) ReservedQuantity(ctx context.Context, addonID, excludeBookingID string, pendingCutoff time.Time) (int, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.addonLineColl.Find(ctxWithTimeout, bson.M{"addon_id": addonID})
	if err != nil {
		return 0, fmt.Errorf("error finding addon lines: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var lines []models.BookingAddon
	if err := cursor.All(ctxWithTimeout, &lines); err != nil {
		return 0, fmt.Errorf("error decoding addon lines: %w", err)
	}
	if len(lines) == 0 {
		return 0, nil
	}

	quantities := make(map[string]int, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if line.BookingID == excludeBookingID {
			continue
		}
		quantities[line.BookingID] += line.Quantity
		ids = append(ids, line.BookingID)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	holderCursor, err := repo.bookingColl.Find(ctxWithTimeout, bson.M{
		"id":     bson.M{"$in": ids},
		"status": models.StatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("error finding holding bookings: %w", err)
	}
	defer holderCursor.Close(ctxWithTimeout)

	var holders []models.Booking
	if err := holderCursor.All(ctxWithTimeout, &holders); err != nil {
		return 0, fmt.Errorf("error decoding holding bookings: %w", err)
	}

	total := 0
	for _, b := range holders {
		// Stale pending holds no longer count; the TTL is evaluated lazily
		// at read time rather than by a sweeper.
		if b.CreatedAt.After(pendingCutoff) {
			total += quantities[b.ID]
		}
	}
	return total, nil
}

// StalePending lists pending bookings created before cutoff.
func (repo *MongoBookingRepo) StalePending(ctx context.Context, cutoff time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status":     models.StatusPending,
		"created_at": bson.M{"$lt": cutoff},
	}
	cursor, err := repo.bookingColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding stale pending bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding stale pending bookings: %w", err)
	}
	return bookings, nil
}
