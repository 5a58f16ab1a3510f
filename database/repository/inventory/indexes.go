package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on the addons and stock_events collections.
func (repo *MongoInventoryRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	addonModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
	}
	if _, err := repo.addonColl.Indexes().CreateMany(ctx, addonModels); err != nil {
		return fmt.Errorf("failed to create addon indexes: %w", err)
	}

	// Ledger reads are always per addon, oldest first.
	eventModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "addon_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("addon_created_idx"),
		},
	}
	if _, err := repo.eventColl.Indexes().CreateMany(ctx, eventModels); err != nil {
		return fmt.Errorf("failed to create stock event indexes: %w", err)
	}
	return nil
}
