package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"fraudatlas/internal/domain/models"
	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/infrastructure/database/repository"
	"fraudatlas/pkg/logger"
)

// CasesHandler handles fraud-case catalog endpoints
type CasesHandler struct {
	cases    *repository.CaseRepository
	compiler *services.Compiler
	logger   *logger.Logger
}

// NewCasesHandler creates a new CasesHandler
func NewCasesHandler(cases *repository.CaseRepository, compiler *services.Compiler, log *logger.Logger) *CasesHandler {
	return &CasesHandler{
		cases:    cases,
		compiler: compiler,
		logger:   log.WithComponent("cases"),
	}
}

// List handles GET /api/v1/cases
func (h *CasesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r)

	if h.cases != nil {
		records, total, err := h.cases.List(r.Context(), filter)
		if err == nil {
			writeJSON(w, http.StatusOK, map[string]any{
				"data":   records,
				"total":  total,
				"limit":  filter.Limit,
				"offset": filter.Offset,
			})
			return
		}
		h.logger.Error().Err(err).Msg("database list failed, serving from memory")
	}

	records, total := listFromDataset(h.compiler.Current(), filter)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":   records,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// Get handles GET /api/v1/cases/{company}
func (h *CasesHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := url.PathUnescape(chi.URLParam(r, "company"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid company name"})
		return
	}

	if ds := h.compiler.Current(); ds != nil {
		if rec, ok := ds.Get(company); ok {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	} else if h.cases != nil {
		rec, err := h.cases.GetByCompany(r.Context(), company)
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to get fraud case")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
			return
		}
		if rec != nil {
			writeJSON(w, http.StatusOK, rec)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, map[string]string{"error": "case not found"})
}

func parseFilter(r *http.Request) repository.CaseFilter {
	q := r.URL.Query()
	filter := repository.CaseFilter{
		FraudType:    q.Get("fraud_type"),
		Jurisdiction: q.Get("jurisdiction"),
		Source:       q.Get("source"),
		Search:       q.Get("search"),
		Limit:        100,
	}

	if v := q.Get("synthetic"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filter.Synthetic = &b
		}
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		filter.Offset = v
	}

	return filter
}

// listFromDataset filters the in-memory catalog; used before the
// database is configured or when it is unavailable
func listFromDataset(ds *models.CanonicalDataset, filter repository.CaseFilter) ([]models.FraudCaseRecord, int) {
	if ds == nil {
		return nil, 0
	}

	var matched []models.FraudCaseRecord
	for _, rec := range ds.Records() {
		if filter.FraudType != "" && rec.FraudType.String() != filter.FraudType {
			continue
		}
		if filter.Jurisdiction != "" && rec.Jurisdiction != strings.ToLower(filter.Jurisdiction) {
			continue
		}
		if filter.Source != "" && rec.Source != filter.Source {
			continue
		}
		if filter.Synthetic != nil && rec.IsSynthetic != *filter.Synthetic {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(rec.CompanyName), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	if filter.Offset >= total {
		return nil, total
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
