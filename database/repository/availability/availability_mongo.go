package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"solace/config"
	"solace/database"
	"solace/models"
	"solace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AvailabilityRepository is the data-access contract for provider blackout dates.
type AvailabilityRepository interface {
	// BlackoutsInRange returns blackout rows for a provider whose date falls
	// inside [startDate, endDate] inclusive.
	BlackoutsInRange(ctx context.Context, providerID, startDate, endDate string) ([]models.ProviderBlackout, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.ProviderBlackout, error)

	// AddMany upserts blackout rows and returns how many were newly created.
	AddMany(ctx context.Context, blackouts []models.ProviderBlackout) (int, error)

	// RemoveMany deletes blackout rows for the given dates and returns how
	// many were removed.
	RemoveMany(ctx context.Context, providerID string, dates []string) (int, error)
}

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	blackoutColl *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoAvailabilityRepo{
		blackoutColl: db.Collection("provider_blackouts"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure blackout indexes", zap.Error(err))
	}
	return repo
}

// BlackoutsInRange returns blackout rows inside the inclusive date range.
func (repo *MongoAvailabilityRepo) BlackoutsInRange(ctx context.Context, providerID, startDate, endDate string) ([]models.ProviderBlackout, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$gte": startDate, "$lte": endDate},
	}
	cursor, err := repo.blackoutColl.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching blackouts: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var blackouts []models.ProviderBlackout
	if err := cursor.All(ctxWithTimeout, &blackouts); err != nil {
		return nil, fmt.Errorf("error decoding blackouts: %w", err)
	}
	return blackouts, nil
}

// ListByProvider returns all blackout rows for a provider.
func (repo *MongoAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.ProviderBlackout, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.blackoutColl.Find(ctxWithTimeout, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching blackouts for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var blackouts []models.ProviderBlackout
	if err := cursor.All(ctxWithTimeout, &blackouts); err != nil {
		return nil, fmt.Errorf("error decoding blackouts: %w", err)
	}
	return blackouts, nil
}

// AddMany upserts blackout rows keyed on (provider_id, date) so re-declaring
// an existing blackout is a no-op, and returns how many were newly created.
func (repo *MongoAvailabilityRepo) AddMany(ctx context.Context, blackouts []models.ProviderBlackout) (int, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	created := 0
	for _, b := range blackouts {
		filter := bson.M{"provider_id": b.ProviderID, "date": b.Date}
		update := bson.M{"$set": bson.M{"reason": b.Reason}}
		opts := options.Update().SetUpsert(true)

		res, err := repo.blackoutColl.UpdateOne(ctxWithTimeout, filter, update, opts)
		if err != nil {
			return created, fmt.Errorf("error upserting blackout %s/%s: %w", b.ProviderID, b.Date, err)
		}
		if res.UpsertedCount > 0 {
			created++
		}
	}
	return created, nil
}

// RemoveMany deletes blackout rows for the given dates.
func (repo *MongoAvailabilityRepo) RemoveMany(ctx context.Context, providerID string, dates []string) (int, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        bson.M{"$in": dates},
	}
	res, err := repo.blackoutColl.DeleteMany(ctxWithTimeout, filter)
	if err != nil {
		return 0, fmt.Errorf("error removing blackouts: %w", err)
	}
	return int(res.DeletedCount), nil
}
