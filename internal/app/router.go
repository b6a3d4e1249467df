package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"rideledger/internal/handler"
	"rideledger/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler     *handler.UserHandler
	RideHandler     *handler.RideHandler
	EscrowHandler   *handler.EscrowHandler
	PlatformHandler *handler.PlatformHandler
	RedisClient     *redis.Client // optional
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.Identity())
	router.Use(middleware.Metrics())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.Idempotency(deps.RedisClient))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		users := v1.Group("/users")
		{
			users.POST("/register", deps.UserHandler.Register)
			users.GET("/:address", deps.UserHandler.GetUser)
			users.GET("/:address/rides", deps.UserHandler.GetUserRides)
		}

		rides := v1.Group("/rides")
		{
			rides.POST("", deps.RideHandler.RequestRide)
			rides.GET("/:id", deps.RideHandler.GetRide)
			rides.POST("/:id/accept", deps.RideHandler.AcceptRide)
			rides.POST("/:id/complete", deps.RideHandler.CompleteRide)
			rides.POST("/:id/cancel", deps.RideHandler.CancelRide)
			rides.POST("/:id/rate", deps.RideHandler.Rate)
		}

		drivers := v1.Group("/drivers")
		{
			drivers.GET("/available", deps.RideHandler.GetAvailableDrivers)
		}

		balance := v1.Group("/balance")
		{
			balance.POST("/withdraw", deps.EscrowHandler.Withdraw)
			balance.GET("/:address", deps.EscrowHandler.GetBalance)
		}

		platform := v1.Group("/platform")
		{
			platform.PUT("/fee", deps.PlatformHandler.SetFee)
			platform.GET("/fee", deps.PlatformHandler.GetFee)
		}
	}

	return router
}
