package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveSwagger(h *SwaggerHandler, path string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(slog.Default())
	h.Register(e)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestSwaggerServesDocument(t *testing.T) {
	h := newSwaggerHandler(slog.Default(), filepath.Join("..", "..", defaultSwaggerPath))

	rec := serveSwagger(h, "/api/swagger.json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, echo.MIMEApplicationJSON, rec.Header().Get(echo.HeaderContentType))

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	for _, route := range []struct{ path, method string }{
		{"/posts", "get"},
		{"/posts", "post"},
		{"/posts/{id}", "get"},
		{"/users/{id}/posts", "get"},
		{"/profiles/{username}", "get"},
		{"/auth/register", "post"},
		{"/auth/login", "post"},
		{"/auth/me", "get"},
	} {
		assert.Contains(t, doc.Paths[route.path], route.method, "%s %s", route.method, route.path)
	}
}

func TestSwaggerMissingDocument(t *testing.T) {
	h := newSwaggerHandler(slog.Default(), filepath.Join(t.TempDir(), "swagger.json"))

	rec := serveSwagger(h, "/api/swagger.json")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
}

func TestSwaggerUI(t *testing.T) {
	rec := serveSwagger(NewSwaggerHandler(slog.Default()), "/api/docs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/swagger.json")
}
