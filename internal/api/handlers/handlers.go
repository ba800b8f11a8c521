package handlers

import (
	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/infrastructure/cache"
	"fraudatlas/internal/infrastructure/database/repository"
	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health  *HealthHandler
	Cases   *CasesHandler
	Screen  *ScreenHandler
	Stats   *StatsHandler
	Sources *SourcesHandler
	Admin   *AdminHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Compiler *services.Compiler
	Screener *services.Screener
	Registry *sources.Registry
	Cases    *repository.CaseRepository
	Cache    *cache.RedisCache
	Logger   *logger.Logger
	Version  string
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Cache, deps.Cases, deps.Compiler, deps.Version, deps.Logger),
		Cases:   NewCasesHandler(deps.Cases, deps.Compiler, deps.Logger),
		Screen:  NewScreenHandler(deps.Screener, deps.Logger),
		Stats:   NewStatsHandler(deps.Cases, deps.Compiler, deps.Logger),
		Sources: NewSourcesHandler(deps.Registry, deps.Logger),
		Admin:   NewAdminHandler(deps.Compiler, deps.Logger),
	}
}
