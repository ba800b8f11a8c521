package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func adminProbe(t *testing.T, configuredKey, providedKey string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	var sawAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/admin/rebuild", nil)
	if providedKey != "" {
		req.Header.Set("X-API-Key", providedKey)
	}
	rec := httptest.NewRecorder()
	AdminAuth(configuredKey)(next).ServeHTTP(rec, req)
	return rec, sawAdmin
}

func TestAdminAuthValidKey(t *testing.T) {
	rec, sawAdmin := adminProbe(t, "secret", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, sawAdmin)
}

func TestAdminAuthMissingKey(t *testing.T) {
	rec, sawAdmin := adminProbe(t, "secret", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, sawAdmin)
}

func TestAdminAuthWrongKey(t *testing.T) {
	rec, sawAdmin := adminProbe(t, "secret", "wrong")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, sawAdmin)
}

func TestAdminAuthDisabledWhenNoKeyConfigured(t *testing.T) {
	rec, sawAdmin := adminProbe(t, "", "anything")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, sawAdmin)
}

func TestIsAdminDefaultsFalse(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, IsAdmin(req.Context()))
}
