package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"rideledger/internal/app"
	"rideledger/internal/config"
	"rideledger/internal/domain"
	"rideledger/internal/handler"
	internalRedis "rideledger/internal/redis"
	"rideledger/internal/repository"
	"rideledger/internal/repository/memory"
	"rideledger/internal/repository/postgres"
	"rideledger/internal/service"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the datastore layers can be
	// instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// The store backend defaults to the in-memory ledger; postgres gives
	// the same semantics with durability.
	var db *sql.DB
	if cfg.Store.Backend == "postgres" {
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		log.Println("Connected to PostgreSQL")
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		log.Println("Connected to Redis")
	}

	server, err := wireServer(ctx, db, redisClient, nrApp, cfg)
	if err != nil {
		log.Fatalf("failed to wire server: %v", err)
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(ctx context.Context, db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) (*http.Server, error) {
	// Repositories.
	var (
		userRepo    repository.UserRepository
		rideRepo    repository.RideRepository
		balanceRepo repository.BalanceRepository
		configRepo  repository.ConfigRepository
	)
	if db != nil {
		userRepo = postgres.NewUserRepository(db)
		rideRepo = postgres.NewRideRepository(db)
		balanceRepo = postgres.NewBalanceRepository(db)
		configRepo = postgres.NewConfigRepository(db)
	} else {
		userRepo = memory.NewUserRepository()
		rideRepo = memory.NewRideRepository()
		balanceRepo = memory.NewBalanceRepository()
		configRepo = memory.NewConfigRepository()
	}

	// The owner is fixed at first initialization; an existing record wins.
	if err := configRepo.Init(ctx, &domain.PlatformConfig{
		OwnerAddress: cfg.Platform.OwnerAddress,
		FeeBps:       cfg.Platform.InitialFeeBps,
	}); err != nil {
		return nil, err
	}

	var cache service.AvailabilityCache
	if redisClient != nil {
		cache = internalRedis.NewAvailabilityStore(redisClient)
	}

	// Services.
	registryService := service.NewRegistryService(db, userRepo, rideRepo, cache)
	ledgerService := service.NewLedgerService(db, userRepo, rideRepo, balanceRepo, configRepo, cache)
	escrowService := service.NewEscrowService(balanceRepo, service.NewLogPayout())
	feeService := service.NewFeeService(configRepo)

	// Handlers.
	userHandler := handler.NewUserHandler(registryService, ledgerService)
	rideHandler := handler.NewRideHandler(ledgerService, registryService)
	escrowHandler := handler.NewEscrowHandler(escrowService)
	platformHandler := handler.NewPlatformHandler(feeService)

	router := app.NewRouter(app.RouterDeps{
		UserHandler:     userHandler,
		RideHandler:     rideHandler,
		EscrowHandler:   escrowHandler,
		PlatformHandler: platformHandler,
		RedisClient:     redisClient,
		NewRelicApp:     nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, nil
}
