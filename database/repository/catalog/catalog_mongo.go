package catalogRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solace/config"
	"solace/database"
	"solace/models"
	"solace/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const lookupCacheTTL = 5 * time.Minute

// CatalogRepository resolves service packages and provider contact info.
// Both are read-mostly, so lookups go through the Redis cache.
type CatalogRepository interface {
	GetPackage(ctx context.Context, id string) (*models.ServicePackage, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
}

// MongoCatalogRepo implements CatalogRepository using MongoDB with a Redis
// read-through cache.
type MongoCatalogRepo struct {
	packageColl  *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoCatalogRepo constructs a new instance of MongoCatalogRepo.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoCatalogRepo{
		packageColl:  db.Collection("service_packages"),
		providerColl: db.Collection("providers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure catalog indexes", zap.Error(err))
	}
	return repo
}

// GetPackage retrieves a service package by ID.
func (repo *MongoCatalogRepo) GetPackage(ctx context.Context, id string) (*models.ServicePackage, error) {
	cacheKey := "catalog:package:" + id
	cache := utils.GetCacheClient()

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var pkg models.ServicePackage
		if err := json.Unmarshal([]byte(cached), &pkg); err == nil {
			return &pkg, nil
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var pkg models.ServicePackage
	err := repo.packageColl.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&pkg)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching package %s: %w", id, err)
	}

	if data, err := json.Marshal(pkg); err == nil {
		cache.Set(ctx, cacheKey, data, lookupCacheTTL)
	}
	return &pkg, nil
}

// GetProvider retrieves a provider's contact record by ID.
func (repo *MongoCatalogRepo) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	cacheKey := "catalog:provider:" + id
	cache := utils.GetCacheClient()

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var provider models.Provider
		if err := json.Unmarshal([]byte(cached), &provider); err == nil {
			return &provider, nil
		}
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var provider models.Provider
	err := repo.providerColl.FindOne(ctxWithTimeout, bson.M{"id": id}).Decode(&provider)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching provider %s: %w", id, err)
	}

	if data, err := json.Marshal(provider); err == nil {
		cache.Set(ctx, cacheKey, data, lookupCacheTTL)
	}
	return &provider, nil
}
