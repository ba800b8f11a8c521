package handlers

import (
	"context"
	"errors"
	"net/http"

	"fraudatlas/internal/domain/services"
	"fraudatlas/pkg/logger"
)

// AdminHandler handles admin endpoints
type AdminHandler struct {
	compiler *services.Compiler
	logger   *logger.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(compiler *services.Compiler, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		compiler: compiler,
		logger:   log.WithComponent("admin"),
	}
}

// TriggerRebuild handles POST /api/v1/admin/rebuild
func (h *AdminHandler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().Msg("triggering catalog rebuild")

	// Detach from the request context so the rebuild survives the response.
	go func() {
		if _, err := h.compiler.Rebuild(context.Background()); err != nil {
			if errors.Is(err, services.ErrRebuildInProgress) {
				h.logger.Warn().Msg("rebuild already in progress")
				return
			}
			h.logger.Error().Err(err).Msg("rebuild failed")
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"success": true,
		"message": "Rebuild triggered",
	})
}

// LastRebuild handles GET /api/v1/admin/rebuild/last
func (h *AdminHandler) LastRebuild(w http.ResponseWriter, r *http.Request) {
	last := h.compiler.LastResult()
	if last == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no completed rebuild yet"})
		return
	}
	writeJSON(w, http.StatusOK, last)
}
