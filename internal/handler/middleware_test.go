package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware_Preflight(t *testing.T) {
	router, _ := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodOptions, "/traducir", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSMiddleware_ConfiguredOrigins(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = []string{"https://kichwa.example"}
	router, _ := newTestRouter(cfg, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://kichwa.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "https://kichwa.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoveryMiddleware(t *testing.T) {
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	handler := RecoveryMiddleware(panicking)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error inesperado en el servidor")
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	cfg.RateBurst = 1
	router, _ := newTestRouter(cfg, nil)

	// Literal requests so no model involvement. The burst allows one
	// request; the second is rejected.
	rec := postTraducir(router, `{"texto": "a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = postTraducir(router, `{"texto": "a"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestBodyLimitMiddleware_UnderLimitPasses(t *testing.T) {
	router, _ := newTestRouter(testConfig(), nil)

	rec := postTraducir(router, `{"texto": "a"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBodyLimitMiddleware_ChunkedOverLimit(t *testing.T) {
	// No Content-Length advertised: MaxBytesReader still enforces the cap.
	router, _ := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/traducir", strings.NewReader(`{"texto": "`+strings.Repeat("x", 300)+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(testConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rimay_model_state")
}
