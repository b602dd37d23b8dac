package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	f := newTestFixture(t)
	return New(cfg, f.handler, zap.NewNop())
}

func TestServer_Routing(t *testing.T) {
	s := newTestServer(t, Config{Port: 0})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/api/conversation/clear", http.StatusOK},
		{http.MethodPost, "/api/chat", http.StatusBadRequest},    // corpo vazio
		{http.MethodPost, "/api/execute", http.StatusBadRequest}, // corpo vazio
		{http.MethodGet, "/api/settings", http.StatusOK},
		{http.MethodDelete, "/api/chat", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			s.httpServer.Handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestServer_RequestIDHeader(t *testing.T) {
	s := newTestServer(t, Config{Port: 0})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServer_RateLimit(t *testing.T) {
	s := newTestServer(t, Config{Port: 0, RateLimit: 1, RateBurst: 2})

	var got429 bool
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
		rec := httptest.NewRecorder()
		s.httpServer.Handler.ServeHTTP(rec, req)
		if rec.Code == http.StatusTooManyRequests {
			got429 = true
			break
		}
	}
	assert.True(t, got429)
}

func TestServer_StaticFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>rosa</html>"), 0o644))

	s := newTestServer(t, Config{Port: 0, StaticDir: dir})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rosa")
}
