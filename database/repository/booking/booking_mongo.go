package bookingRepo

import (
	"solace/config"
	"solace/database"
	"solace/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl   *mongo.Collection
	dateColl      *mongo.Collection
	addonLineColl *mongo.Collection
	addonColl     *mongo.Collection
	eventColl     *mongo.Collection
	lockColl      *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRepo{
		bookingColl:   db.Collection("bookings"),
		dateColl:      db.Collection("booking_dates"),
		addonLineColl: db.Collection("booking_addons"),
		addonColl:     db.Collection("addons"),
		eventColl:     db.Collection("stock_events"),
		lockColl:      db.Collection("reservation_locks"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure booking indexes", zap.Error(err))
	}
	return repo
}
