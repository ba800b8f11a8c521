package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fraudatlas/internal/sources"
	"fraudatlas/pkg/logger"
)

// SourcesHandler handles source endpoints
type SourcesHandler struct {
	registry *sources.Registry
	logger   *logger.Logger
}

// NewSourcesHandler creates a new SourcesHandler
func NewSourcesHandler(registry *sources.Registry, log *logger.Logger) *SourcesHandler {
	return &SourcesHandler{
		registry: registry,
		logger:   log.WithComponent("sources"),
	}
}

// SourceInfo describes one registered connector
type SourceInfo struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Priority int    `json:"priority"`
	Enabled  bool   `json:"enabled"`
}

// List handles GET /api/v1/sources
func (h *SourcesHandler) List(w http.ResponseWriter, r *http.Request) {
	var infos []SourceInfo
	for _, c := range h.registry.ByPriority() {
		infos = append(infos, SourceInfo{
			Slug:     c.Slug(),
			Name:     c.Name(),
			Category: string(c.Category()),
			Priority: c.Priority(),
			Enabled:  c.IsEnabled(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  infos,
		"total": len(infos),
	})
}

// Get handles GET /api/v1/sources/{slug}
func (h *SourcesHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	connector, ok := h.registry.Get(slug)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "source not found"})
		return
	}

	writeJSON(w, http.StatusOK, SourceInfo{
		Slug:     connector.Slug(),
		Name:     connector.Name(),
		Category: string(connector.Category()),
		Priority: connector.Priority(),
		Enabled:  connector.IsEnabled(),
	})
}
