package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes on the provider_blackouts collection. The
// unique compound key backs the upsert in AddMany, so re-declaring a blackout
// can never create a duplicate row.
func (repo *MongoAvailabilityRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_provider_date"),
		},
	}
	if _, err := repo.blackoutColl.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create blackout indexes: %w", err)
	}
	return nil
}
