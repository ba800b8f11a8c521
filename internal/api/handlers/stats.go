package handlers

import (
	"net/http"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/infrastructure/database/repository"
	"fraudatlas/pkg/logger"
)

// StatsHandler handles catalog statistics endpoints
type StatsHandler struct {
	cases    *repository.CaseRepository
	compiler *services.Compiler
	logger   *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(cases *repository.CaseRepository, compiler *services.Compiler, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		cases:    cases,
		compiler: compiler,
		logger:   log.WithComponent("stats"),
	}
}

// Get handles GET /api/v1/stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := make(map[string]any)

	if ds := h.compiler.Current(); ds != nil {
		stats["total_cases"] = ds.Len()
		stats["by_fraud_type"] = ds.CountBy(func(rec models.FraudCaseRecord) string {
			return rec.FraudType.String()
		})
		stats["by_source"] = ds.CountBy(func(rec models.FraudCaseRecord) string {
			return rec.Source
		})
	} else if h.cases != nil {
		dbStats, err := h.cases.Stats(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to load stats")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "stats unavailable"})
			return
		}
		stats["total_cases"] = dbStats.TotalCount
		stats["by_fraud_type"] = dbStats.ByFraudType
		stats["by_source"] = dbStats.BySource
		stats["synthetic_count"] = dbStats.SyntheticCount
	} else {
		stats["total_cases"] = 0
	}

	if last := h.compiler.LastResult(); last != nil {
		stats["last_rebuild"] = last
	}

	writeJSON(w, http.StatusOK, stats)
}
