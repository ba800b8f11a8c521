package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudatlas/internal/domain/services"
	"fraudatlas/internal/sources"
	"fraudatlas/internal/sources/curated"
	"fraudatlas/pkg/logger"
)

const testCatalog = `[
	{"company_name": "Acme Capital LLC", "case_date": "2024-01-01", "fraud_type": "Ponzi Scheme", "penalty_amount": 4000000, "jurisdiction": "us_ny", "source": "SEC Litigation"},
	{"company_name": "Beta Partners Inc.", "case_date": "2023-05-10", "fraud_type": "Wire Fraud", "jurisdiction": "us_ca", "source": "SEC Litigation"}
]`

// newTestRouter wires real components over an in-memory catalog and
// mounts the public routes.
func newTestRouter(t *testing.T) (chi.Router, *services.Compiler) {
	t.Helper()
	log := logger.NewDefault()

	path := filepath.Join(t.TempDir(), "cases.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	conn := curated.New(log)
	require.NoError(t, conn.Configure(sources.ConnectorConfig{Enabled: true, Path: path}))

	registry := sources.NewRegistry(log)
	require.NoError(t, registry.Register(conn))

	compiler := services.NewCompiler(registry, services.NewMerger(log), nil, nil, nil, log)
	_, err := compiler.Rebuild(context.Background())
	require.NoError(t, err)

	screener := services.NewScreener(compiler, log)
	screener.SetSanctionedNames([]string{"Offshore Ventures Ltd."})

	h := NewHandlers(Dependencies{
		Compiler: compiler,
		Screener: screener,
		Registry: registry,
		Logger:   log,
		Version:  "test",
	})

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cases", h.Cases.List)
		r.Get("/cases/{company}", h.Cases.Get)
		r.Get("/screen", h.Screen.Check)
		r.Post("/screen/batch", h.Screen.CheckBatch)
		r.Get("/stats", h.Stats.Get)
		r.Get("/sources", h.Sources.List)
		r.Get("/sources/{slug}", h.Sources.Get)
	})
	return r, compiler
}

func doRequest(t *testing.T, router chi.Router, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestListCases(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/cases", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 2)
}

func TestListCasesFilteredByFraudType(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/cases?fraud_type=Wire+Fraud", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total"])

	data := body["data"].([]any)
	require.Len(t, data, 1)
	first := data[0].(map[string]any)
	assert.Equal(t, "Beta Partners Inc.", first["company_name"])
}

func TestGetCaseByCompany(t *testing.T) {
	router, _ := newTestRouter(t)

	target := "/api/v1/cases/" + url.PathEscape("Acme Capital LLC")
	rec, body := doRequest(t, router, http.MethodGet, target, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Capital LLC", body["company_name"])
}

func TestGetCaseNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/cases/Unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "case not found", body["error"])
}

func TestScreenCatalogHit(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/screen?name="+url.QueryEscape("  ACME CAPITAL LLC "), "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["in_catalog"])
	assert.Equal(t, false, body["sanctioned"])
}

func TestScreenRequiresName(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/screen", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, body["error"])
}

func TestScreenBatch(t *testing.T) {
	router, _ := newTestRouter(t)

	payload := `{"names": ["Acme Capital LLC", "Offshore Ventures Ltd.", "Clean Company Inc."]}`
	rec, body := doRequest(t, router, http.MethodPost, "/api/v1/screen/batch", payload)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["total"])
	assert.Equal(t, float64(2), body["flagged"])
}

func TestScreenBatchRejectsEmpty(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/api/v1/screen/batch", `{"names": []}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStats(t *testing.T) {
	router, compiler := newTestRouter(t)
	require.NotNil(t, compiler.LastResult())

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["total_cases"])

	byType, ok := body["by_fraud_type"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), byType["Ponzi Scheme"])

	assert.Contains(t, body, "last_rebuild")
}

func TestListSources(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/sources", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["total"])

	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 1)

	first := data[0].(map[string]any)
	assert.Equal(t, "curated", first["slug"])
	assert.Equal(t, true, first["enabled"])
}

func TestGetSourceUnknownSlug(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodGet, "/api/v1/sources/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEmpty(t, body["error"])
}
