package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fraudatlas/internal/api"
	"fraudatlas/internal/api/handlers"
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
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting FraudAtlas API")

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

	// Initialize case repository
	var caseRepo *repository.CaseRepository
	if db != nil {
		caseRepo = repository.NewCaseRepository(db)
		if err := caseRepo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ensure database schema")
		}
		log.Info().Msg("case repository initialized with database")
	} else {
		log.Warn().Msg("running without database - serving the in-memory catalog only")
	}

	// Initialize extraction pipeline services
	extractor := extract.NewExtractor(cfg.Pipeline.MaxEntities, log)
	builder := services.NewRecordBuilder(log)
	merger := services.NewMerger(log)

	// Register source connectors
	registry := sources.NewRegistry(log)
	registerConnectors(registry, extractor, builder, cfg.Pipeline.WorkerPoolSize, log)
	registry.ConfigureFromSourcesConfig(cfg.Sources)

	// Wire exporters
	exporters := buildExporters(cfg.Export, log)

	// Create compiler
	var store services.CaseStore
	if caseRepo != nil {
		store = caseRepo
	}
	compiler := services.NewCompiler(registry, merger, store, redisCache, exporters, log)

	// Create screener
	screener := services.NewScreener(compiler, log)
	if cfg.Screening.SanctionedNamesPath != "" {
		if err := screener.LoadSanctionedNames(cfg.Screening.SanctionedNamesPath); err != nil {
			log.Warn().Err(err).Msg("failed to load sanctioned names, screening list empty")
		}
	}

	// Initialize handlers
	deps := handlers.Dependencies{
		Compiler: compiler,
		Screener: screener,
		Registry: registry,
		Cases:    caseRepo,
		Cache:    redisCache,
		Logger:   log,
		Version:  cfg.App.Version,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Build the catalog on startup so the API has data to serve
	if cfg.Pipeline.Enabled {
		go func() {
			if _, err := compiler.Rebuild(ctx); err != nil && err != context.Canceled {
				log.Error().Err(err).Msg("initial catalog rebuild failed")
			}
		}()
	}

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Cancel context to stop background services
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections.
// Both are optional: the API serves from memory without them.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
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

// buildExporters wires the configured output artifacts
func buildExporters(cfg config.ExportConfig, log *logger.Logger) []services.Exporter {
	exporters := []services.Exporter{
		export.NewCSVExporter(cfg.CSVPath, log),
	}
	if cfg.XLSXEnabled && cfg.XLSXPath != "" {
		exporters = append(exporters, export.NewXLSXExporter(cfg.XLSXPath, log))
	}
	return exporters
}
