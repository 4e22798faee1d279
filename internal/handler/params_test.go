package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWithID(id string) *http.Request {
	req := httptest.NewRequest("GET", "/api/v1/students/"+id, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestIDParam(t *testing.T) {
	t.Run("parses a positive integer", func(t *testing.T) {
		id, err := idParam(requestWithID("42"))
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("rejects non numeric values", func(t *testing.T) {
		_, err := idParam(requestWithID("abc"))
		assert.Error(t, err)
	})

	t.Run("rejects zero and negatives", func(t *testing.T) {
		for _, raw := range []string{"0", "-3"} {
			_, err := idParam(requestWithID(raw))
			assert.Error(t, err)
		}
	})
}

func TestClientIP(t *testing.T) {
	t.Run("prefers the first forwarded address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		assert.Equal(t, "203.0.113.9", clientIP(req))
	})

	t.Run("falls back to X-Real-IP then remote address", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Real-IP", "203.0.113.7")
		assert.Equal(t, "203.0.113.7", clientIP(req))

		req = httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.0.2.4:5123"
		assert.Equal(t, "192.0.2.4", clientIP(req))
	})
}
