package inventoryRepo

import (
	"context"
	"fmt"
	"time"

	"solace/config"
	"solace/database"
	"solace/models"
	"solace/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoInventoryRepo implements InventoryRepository using MongoDB.
type MongoInventoryRepo struct {
	addonColl *mongo.Collection
	eventColl *mongo.Collection
}

// NewMongoInventoryRepo constructs a new instance of MongoInventoryRepo.
func NewMongoInventoryRepo() InventoryRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoInventoryRepo{
		addonColl: db.Collection("addons"),
		eventColl: db.Collection("stock_events"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure inventory indexes", zap.Error(err))
	}
	return repo
}

// GetAddon retrieves a catalog addon by ID.
func (repo *MongoInventoryRepo) GetAddon(ctx context.Context, id string) (*models.Addon, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var addon models.Addon
	err := repo.addonColl.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&addon)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching addon %s: %w", id, err)
	}
	return &addon, nil
}

// AdjustStock applies a manual signed correction to the stock counter and
// appends an adjust event. A negative delta only matches when the counter
// stays non-negative, so the ledger never records an impossible stock level.
func (repo *MongoInventoryRepo) AdjustStock(ctx context.Context, addonID string, delta int, reason string) (*models.Addon, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": addonID, "stock_quantity": bson.M{"$ne": nil}}
	if delta < 0 {
		filter["stock_quantity"] = bson.M{"$gte": -delta}
	}
	update := bson.M{"$inc": bson.M{"stock_quantity": delta}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Addon
	err := repo.addonColl.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("addon %s not found, is not physical stock, or adjustment would go negative", addonID)
	}
	if err != nil {
		return nil, fmt.Errorf("error adjusting stock for addon %s: %w", addonID, err)
	}

	event := models.StockEvent{
		ID:             uuid.New().String(),
		AddonID:        addonID,
		Type:           models.StockEventAdjust,
		Quantity:       delta,
		StockDelta:     delta,
		ResultingStock: updated.StockQuantity,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}
	if _, err := repo.eventColl.InsertOne(ctxWithTimeout, event); err != nil {
		return nil, fmt.Errorf("error appending adjust event: %w", err)
	}
	return &updated, nil
}

// EventsForAddon returns the ledger for one addon, oldest first.
func (repo *MongoInventoryRepo) EventsForAddon(ctx context.Context, addonID string) ([]models.StockEvent, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": 1})
	cursor, err := repo.eventColl.Find(ctxWithTimeout, bson.M{"addon_id": addonID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching stock events: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var events []models.StockEvent
	if err := cursor.All(ctxWithTimeout, &events); err != nil {
		return nil, fmt.Errorf("error decoding stock events: %w", err)
	}
	return events, nil
}
