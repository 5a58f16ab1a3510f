package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the booking queries depend on. The
// reservation_locks collection needs nothing extra: its _id key is unique by
// construction, which is exactly what the create transaction relies on.
func (repo *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary listing and conflict-check pattern.
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("provider_status_idx"),
		},
		// Stale-pending sweep.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	dateModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetName("booking_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("date_idx"),
		},
	}
	if _, err := repo.dateColl.Indexes().CreateMany(ctx, dateModels); err != nil {
		return fmt.Errorf("failed to create booking date indexes: %w", err)
	}

	addonLineModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_id", Value: 1}},
			Options: options.Index().SetName("booking_id_idx"),
		},
		{
			Keys:    bson.D{{Key: "addon_id", Value: 1}},
			Options: options.Index().SetName("addon_id_idx"),
		},
	}
	if _, err := repo.addonLineColl.Indexes().CreateMany(ctx, addonLineModels); err != nil {
		return fmt.Errorf("failed to create booking addon indexes: %w", err)
	}
	return nil
}
