// File: solace/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"solace/config"
	"solace/cron"
	"solace/database"
	availabilityRepo "solace/database/repository/availability"
	bookingRepo "solace/database/repository/booking"
	catalogRepo "solace/database/repository/catalog"
	inventoryRepo "solace/database/repository/inventory"
	"solace/handlers"
	"solace/middleware"
	"solace/routes"
	"solace/services/booking"
	"solace/services/provider"
	"solace/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bkRepo := bookingRepo.NewMongoBookingRepo()
	invRepo := inventoryRepo.NewMongoInventoryRepo()
	availRepo := availabilityRepo.NewMongoAvailabilityRepo()
	ctlgRepo := catalogRepo.NewMongoCatalogRepo()

	// services.
	engine := &booking.DefaultBookingEngine{
		Repo:      bkRepo,
		Inventory: invRepo,
		Blackouts: availRepo,
		Catalog:   ctlgRepo,
	}
	availabilityService := &provider.DefaultAvailabilityService{
		Repo:    availRepo,
		Catalog: ctlgRepo,
	}

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	providerHandler := handlers.NewProviderHandler(availabilityService, invRepo, logger)

	routes.RegisterRoutes(router, bookingHandler, providerHandler)

	// Background sweep for stale pending bookings.
	cron.InitSweepWorker(engine)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
