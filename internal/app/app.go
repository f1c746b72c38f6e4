package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"bench-analytics/internal/aggregators"
	"bench-analytics/internal/caches"
	"bench-analytics/internal/events"
	internalhttp "bench-analytics/internal/http"
	"bench-analytics/internal/ingestors"
	"bench-analytics/internal/models"
	"bench-analytics/internal/shared/configs"
	"bench-analytics/internal/shared/filestorages"
	"bench-analytics/internal/shared/loggers"
	"bench-analytics/internal/stores"
	"bench-analytics/internal/streams"

	"github.com/redis/go-redis/v9"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	db          *sql.DB
	redisClient *redis.Client

	resultBatchConsumer streams.ResultBatchConsumer
	backgroundCtx       context.Context
	backgroundCancel    context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "bench-analytics").
		Logger()

	// Initialize the result store
	openCtx, cancelOpen := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelOpen()
	db, err := stores.Open(openCtx, config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	resultStore := stores.NewPostgresResultStore(db)

	// Initialize the raw batch archive
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	rawBatchStore := stores.NewRawBatchStore(fileStorage)

	// Initialize the snapshot cache
	var snapshotCache caches.SnapshotCache
	var redisClient *redis.Client
	if config.Cache.Enabled {
		redisClient = redis.NewClient(&redis.Options{Addr: config.Cache.Addr})
		cacheLogger := appLogger.With().Str(loggers.FieldComponent, "cache").Logger()
		snapshotCache = caches.NewRedisSnapshotCache(redisClient, time.Duration(config.Cache.TTLSeconds)*time.Second, cacheLogger)
	} else {
		snapshotCache = caches.NewNoopSnapshotCache()
	}

	// Initialize the aggregation service
	defaultWindow, err := models.NewTimeWindowFromString(config.Aggregation.DefaultWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize default window: %w", err)
	}
	providerAggregator := aggregators.NewProviderAggregator(aggregators.JitterThresholds{
		GreenMs:  config.Aggregation.JitterGreenMs,
		YellowMs: config.Aggregation.JitterYellowMs,
	})
	aggregationService := aggregators.NewAggregationService(
		resultStore,
		snapshotCache,
		providerAggregator,
		config.Aggregation.MaxRows,
		config.Aggregation.TopN,
	)

	// Initialize the ingestion pipeline
	resultBatchQueue := streams.NewPartitionedQueue[events.ResultBatchEvent]()
	resultBatchProducer := streams.NewResultBatchProducer(resultBatchQueue)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	resultBatchConsumer := streams.NewResultBatchConsumer(resultBatchQueue, resultStore, consumerLogger)
	ingestionService := ingestors.NewIngestionService(rawBatchStore, resultBatchProducer)

	// Initialize the http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, aggregationService, defaultWindow, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:              config,
		appLogger:           appLogger,
		server:              server,
		db:                  db,
		redisClient:         redisClient,
		resultBatchConsumer: resultBatchConsumer,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting bench-analytics service on port %d (log_level=%s, default_window=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Aggregation.DefaultWindow)

	// start background consumers
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	app.resultBatchConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background consumers
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background consumers cancelled")
	}

	// 3) Wait for background consumers to finish
	app.resultBatchConsumer.Stop()
	app.appLogger.Info().Msg("Background consumers stopped")

	// 4) Close external connections
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.appLogger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}
	if err := app.db.Close(); err != nil {
		app.appLogger.Warn().Err(err).Msg("Failed to close database")
	}

	return nil
}
