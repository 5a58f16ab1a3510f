package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"solace/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := repo.bookingColl.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", id, err)
	}
	return &booking, nil
}

// DatesForBooking returns the date rows belonging to a booking.
func (repo *MongoBookingRepo) DatesForBooking(ctx context.Context, bookingID string) ([]models.BookingDate, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.dateColl.Find(ctxWithTimeout, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching booking dates: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var dates []models.BookingDate
	if err := cursor.All(ctxWithTimeout, &dates); err != nil {
		return nil, fmt.Errorf("error decoding booking dates: %w", err)
	}
	return dates, nil
}

// AddonsForBooking returns the addon lines belonging to a booking.
func (repo *MongoBookingRepo) AddonsForBooking(ctx context.Context, bookingID string) ([]models.BookingAddon, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.addonLineColl.Find(ctxWithTimeout, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("error fetching booking addons: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var addons []models.BookingAddon
	if err := cursor.All(ctxWithTimeout, &addons); err != nil {
		return nil, fmt.Errorf("error decoding booking addons: %w", err)
	}
	return addons, nil
}

// ListByProvider returns every booking for a provider, newest first.
func (repo *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.bookingColl.Find(ctxWithTimeout, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error listing bookings for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus applies a status change with no inventory effect and appends a
// provider-notes line. Notes are pushed, never overwritten.
func (repo *MongoBookingRepo) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus, note string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":  bson.M{"status": status},
		"$push": bson.M{"provider_notes": note},
	}
	res, err := repo.bookingColl.UpdateOne(ctxWithTimeout, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s status: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}
