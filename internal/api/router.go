package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"fraudatlas/internal/api/handlers"
	apimiddleware "fraudatlas/internal/api/middleware"
	"fraudatlas/internal/config"
	"fraudatlas/internal/infrastructure/cache"
	"fraudatlas/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Health checks
	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)

	// API v1 routes
	router.Route("/api/v1", func(api chi.Router) {
		// Catalog
		api.Route("/cases", func(cases chi.Router) {
			cases.Get("/", r.handlers.Cases.List)
			cases.Get("/{company}", r.handlers.Cases.Get)
		})

		// Screening
		api.Get("/screen", r.handlers.Screen.Check)
		api.Post("/screen/batch", r.handlers.Screen.CheckBatch)

		// Stats
		api.Get("/stats", r.handlers.Stats.Get)

		// Sources
		api.Route("/sources", func(sources chi.Router) {
			sources.Get("/", r.handlers.Sources.List)
			sources.Get("/{slug}", r.handlers.Sources.Get)
		})

		// Admin endpoints
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(apimiddleware.AdminAuth(r.config.Admin.APIKey))

			admin.Post("/rebuild", r.handlers.Admin.TriggerRebuild)
			admin.Get("/rebuild/last", r.handlers.Admin.LastRebuild)
		})
	})

	return router
}
