package server

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tkbvnedu/internal/config"
	svcstore "tkbvnedu/internal/service/store"
	"tkbvnedu/internal/store"
)

func newTestServer(t *testing.T, devMode bool) *Server {
	t.Helper()

	st, err := store.New(filepath.Join(t.TempDir(), "tkb.db"))
	require.NoError(t, err)

	t.Cleanup(func() { _ = st.Close() })

	cfg := config.DefaultConfig()
	cfg.Server.DevMode = devMode
	return New(cfg, st, st, zap.NewNop())
}

func TestServer_ServesIndexAndAPI(t *testing.T) {
	s := newTestServer(t, false)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/vocabulary", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Body.String(), "TOÁN")
}

func TestServer_PreflightAndDevRedirect(t *testing.T) {
	s := newTestServer(t, true)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/mappings", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "http://localhost:5173/app", w.Header().Get("Location"))
}

func TestServer_InMemoryMappings(t *testing.T) {
	s := New(config.DefaultConfig(), svcstore.NewMemoryStore(), nil, zap.NewNop())

	body := strings.NewReader(`{"entries":[{"raw":"Tin","canonical":"TIN HỌC"}]}`)
	req := httptest.NewRequest(http.MethodPut, "/api/mappings", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":0`)

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mappings/tin", nil))
	assert.Contains(t, w.Body.String(), "TIN HỌC")

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	assert.Contains(t, w.Body.String(), `"data":[]`)
}
