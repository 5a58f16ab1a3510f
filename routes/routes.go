package routes

import (
	"net/http"
	"time"

	"solace/handlers"
	"solace/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking engine endpoints.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.POST("", bh.CreateBooking)
		api.GET("/:id", bh.GetBooking)

		// Lifecycle transitions are provider actions.
		api.PATCH("/:id/status", middleware.JWTAuthProviderMiddleware(), bh.UpdateStatus)
	}

	r.POST("/api/availability/check", bh.CheckAvailability)
	r.GET("/api/addons/:id/stock", bh.GetAddonStock)
}

// RegisterProviderRoutes registers blackout-date and inventory management
// endpoints. All of them require provider authentication.
func RegisterProviderRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.ProviderHandler) {
	api := r.Group("/api/providers")
	api.Use(middleware.JWTAuthProviderMiddleware())
	{
		api.GET("/:id/bookings", bh.ListProviderBookings)
		api.GET("/:id/blackouts", ph.ListBlackouts)
		api.POST("/:id/blackouts", ph.AddBlackouts)
		api.DELETE("/:id/blackouts", ph.RemoveBlackouts)
	}

	addons := r.Group("/api/addons")
	addons.Use(middleware.JWTAuthProviderMiddleware())
	{
		addons.POST("/:id/adjust-stock", ph.AdjustStock)
		addons.GET("/:id/events", ph.GetStockEvents)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Solace"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, bh *handlers.BookingHandler, ph *handlers.ProviderHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, bh)
	RegisterProviderRoutes(r, bh, ph)
}
