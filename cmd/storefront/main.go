package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jafarshop/fastpizza/internal/api"
	"github.com/jafarshop/fastpizza/internal/cache"
	"github.com/jafarshop/fastpizza/internal/config"
	"github.com/jafarshop/fastpizza/internal/geocode"
	"github.com/jafarshop/fastpizza/internal/repository"
	"github.com/jafarshop/fastpizza/internal/repository/memory"
	"github.com/jafarshop/fastpizza/internal/repository/postgres"
	"github.com/jafarshop/fastpizza/internal/restaurant"
	"github.com/jafarshop/fastpizza/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit storage
	var repos *repository.Repositories
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
		repos = postgres.NewRepositories(db, logger)
		logger.Info("Recording order events in postgres", zap.String("host", cfg.Database.Host))
	} else {
		repos = memory.NewRepositories()
		logger.Info("Recording order events in memory")
	}

	// Menu cache
	var menuCache cache.MenuCache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		menuCache = cache.NewRedisMenuCache(rdb)
		logger.Info("Caching menu in redis", zap.String("addr", cfg.Cache.RedisAddr))
	} else {
		menuCache = cache.NewMemoryMenuCache()
	}

	// Clients
	restaurantClient := restaurant.NewClient(cfg.Restaurant, logger)
	geocodeClient := geocode.NewClient(cfg.Geocode, logger)

	// Services
	sessions := service.NewSessionRegistry(geocodeClient, logger)
	menu := service.NewMenuService(restaurantClient, menuCache, cfg.Cache.MenuTTL, logger)
	services := &api.Services{
		Sessions: sessions,
		Menu:     menu,
		Cart:     service.NewCartService(menu, logger),
		Orders:   service.NewOrderService(restaurantClient, repos, cfg.Audit.PhoneHashKey, logger),
	}

	sweepInterval := cfg.Session.IdleTimeout / 4
	if sweepInterval < time.Minute {
		sweepInterval = time.Minute
	}
	go sessions.RunSweeper(ctx, sweepInterval, cfg.Session.IdleTimeout)

	router := api.NewRouter(cfg, services, api.NewMetrics(), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting storefront",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("restaurant_api", cfg.Restaurant.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
