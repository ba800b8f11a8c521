package handlers

import (
	"encoding/json"
	"net/http"

	"fraudatlas/internal/domain/services"
	"fraudatlas/pkg/logger"
)

const maxBatchScreenNames = 100

// ScreenHandler handles company screening endpoints
type ScreenHandler struct {
	screener *services.Screener
	logger   *logger.Logger
}

// NewScreenHandler creates a new ScreenHandler
func NewScreenHandler(screener *services.Screener, log *logger.Logger) *ScreenHandler {
	return &ScreenHandler{
		screener: screener,
		logger:   log.WithComponent("screen"),
	}
}

// Check handles GET /api/v1/screen?name=...
func (h *ScreenHandler) Check(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name parameter is required"})
		return
	}

	writeJSON(w, http.StatusOK, h.screener.Screen(name))
}

// BatchRequest is the body for POST /api/v1/screen/batch
type BatchRequest struct {
	Names []string `json:"names"`
}

// CheckBatch handles POST /api/v1/screen/batch
func (h *ScreenHandler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Names) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "names are required"})
		return
	}
	if len(req.Names) > maxBatchScreenNames {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "too many names, max 100"})
		return
	}

	results := make([]services.ScreenResult, 0, len(req.Names))
	flagged := 0
	for _, name := range req.Names {
		result := h.screener.Screen(name)
		if result.InCatalog || result.Sanctioned {
			flagged++
		}
		results = append(results, result)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":    results,
		"total":   len(results),
		"flagged": flagged,
	})
}
