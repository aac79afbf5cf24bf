package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/memohai/chirp/internal/handlers"
)

func TestIsPublicRoute(t *testing.T) {
	tests := []struct {
		method, path string
		want         bool
	}{
		{http.MethodGet, "/posts", true},
		{http.MethodGet, "/posts/123", true},
		{http.MethodGet, "/users/u1/posts", true},
		{http.MethodGet, "/profiles/alice", true},
		{http.MethodGet, "/ping", true},
		{http.MethodHead, "/health", true},
		{http.MethodPost, "/auth/login", true},
		{http.MethodPost, "/auth/register", true},
		{http.MethodGet, "/api/swagger.json", true},
		{http.MethodGet, "/api/docs", true},
		{http.MethodPost, "/api/swagger.json", false},
		{http.MethodPost, "/posts", false},
		{http.MethodGet, "/auth/me", false},
		{http.MethodDelete, "/posts/123", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPublicRoute(tt.method, tt.path), "%s %s", tt.method, tt.path)
	}
}

func TestServerRejectsAnonymousWrites(t *testing.T) {
	log := slog.Default()
	srv := NewServer(log, "", "server-test-secret", handlers.NewPingHandler(log))

	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader(`{"content":"😀"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"code":"UNAUTHORIZED","message":"sign in to continue"}`, rec.Body.String())
}

func TestServerPublicRoutes(t *testing.T) {
	log := slog.Default()
	srv := NewServer(log, ":0", "server-test-secret", handlers.NewPingHandler(log), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"NOT_FOUND"`)
}
