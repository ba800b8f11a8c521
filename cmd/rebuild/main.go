package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fraudatlas/internal/config"
	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/export"
	"fraudatlas/internal/extract"
	"fraudatlas/internal/infrastructure/cache"
	"fraudatlas/internal/infrastructure/database"
	"fraudatlas/internal/infrastructure/database/repository"
	"fraudatlas/internal/sources"
	"fraudatlas/internal/sources/complaints"
	"fraudatlas/internal/sources/curated"
	"fraudatlas/internal/sources/sanctions"
	"fraudatlas/internal/sources/synthetic"
	"fraudatlas/pkg/logger"
)

const (
	// Retry settings
	maxRetries     = 3
	baseRetryDelay = 30 * time.Second
	maxRetryDelay  = 5 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	log = log.WithComponent("rebuild-worker")
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting FraudAtlas rebuild worker")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Create worker
	worker, err := NewRebuildWorker(ctx, cfg, db, redisCache, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create rebuild worker")
	}

	// Handle shutdown signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start worker
	go func() {
		if err := worker.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("worker stopped with error")
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-quit
	log.Info().Msg("shutting down rebuild worker...")
	cancel()

	// Give time for graceful shutdown
	time.Sleep(2 * time.Second)
	log.Info().Msg("shutdown complete")
}

// RebuildWorker runs the catalog rebuild on a fixed interval
type RebuildWorker struct {
	config   *config.Config
	compiler *services.Compiler
	logger   *logger.Logger
}

// NewRebuildWorker wires sources, exporters and the compiler
func NewRebuildWorker(
	ctx context.Context,
	cfg *config.Config,
	db *database.PostgresDB,
	redisCache *cache.RedisCache,
	log *logger.Logger,
) (*RebuildWorker, error) {
	var store services.CaseStore
	if db != nil {
		caseRepo := repository.NewCaseRepository(db)
		if err := caseRepo.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		store = caseRepo
	}

	extractor := extract.NewExtractor(cfg.Pipeline.MaxEntities, log)
	builder := services.NewRecordBuilder(log)
	merger := services.NewMerger(log)

	registry := sources.NewRegistry(log)
	registerConnectors(registry, extractor, builder, cfg.Pipeline.WorkerPoolSize, log)
	registry.ConfigureFromSourcesConfig(cfg.Sources)

	exporters := []services.Exporter{
		export.NewCSVExporter(cfg.Export.CSVPath, log),
	}
	if cfg.Export.XLSXEnabled && cfg.Export.XLSXPath != "" {
		exporters = append(exporters, export.NewXLSXExporter(cfg.Export.XLSXPath, log))
	}

	compiler := services.NewCompiler(registry, merger, store, redisCache, exporters, log)

	return &RebuildWorker{
		config:   cfg,
		compiler: compiler,
		logger:   log,
	}, nil
}

// Run starts the worker main loop
func (w *RebuildWorker) Run(ctx context.Context) error {
	interval := w.config.Pipeline.RebuildInterval

	w.logger.Info().
		Dur("interval", interval).
		Int("max_retries", maxRetries).
		Msg("starting rebuild worker loop")

	if delay := w.config.Pipeline.InitialDelay; delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	// Run immediately on start
	w.runWithRetry(ctx)

	// Then run periodically
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("rebuild worker stopped")
			return ctx.Err()
		case <-ticker.C:
			w.runWithRetry(ctx)
		}
	}
}

// runWithRetry runs one rebuild with exponential backoff retry
func (w *RebuildWorker) runWithRetry(ctx context.Context) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := calculateBackoff(attempt)
			w.logger.Info().
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Msg("retrying rebuild after delay")

			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
		}

		result, err := w.compiler.Rebuild(ctx)
		if err == nil {
			w.logger.Info().
				Int("records", result.TotalRecords).
				Int("duplicates_dropped", result.DuplicatesDropped).
				Dur("duration", result.Duration).
				Msg("rebuild run completed successfully")
			return
		}
		if errors.Is(err, services.ErrRebuildInProgress) {
			w.logger.Debug().Msg("another worker is rebuilding, skipping")
			return
		}
		if ctx.Err() != nil {
			return
		}

		lastErr = err
		w.logger.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Msg("rebuild failed")
	}

	w.logger.Error().
		Err(lastErr).
		Int("attempts", maxRetries+1).
		Msg("rebuild failed after all retries")
}

// calculateBackoff calculates exponential backoff delay
func calculateBackoff(attempt int) time.Duration {
	delay := baseRetryDelay * time.Duration(1<<uint(attempt-1))
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

// initInfrastructure initializes database and cache connections.
// Both are optional: the worker still exports file artifacts without them.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without distributed lock")
	}

	return db, redisCache
}

// registerConnectors registers all source connectors
func registerConnectors(registry *sources.Registry, extractor *extract.Extractor, builder *services.RecordBuilder, workers int, log *logger.Logger) {
	if err := registry.Register(curated.New(log)); err != nil {
		log.Warn().Err(err).Msg("failed to register curated connector")
	}
	if err := registry.Register(complaints.New(extractor, builder, workers, log)); err != nil {
		log.Warn().Err(err).Msg("failed to register complaints connector")
	}
	if err := registry.Register(sanctions.New(log)); err != nil {
		log.Warn().Err(err).Msg("failed to register sanctions connector")
	}
	if err := registry.Register(synthetic.New(log)); err != nil {
		log.Warn().Err(err).Msg("failed to register synthetic connector")
	}

	log.Info().
		Int("total", registry.Count()).
		Int("enabled", registry.CountEnabled()).
		Msg("registered source connectors")
}
