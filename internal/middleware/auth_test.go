package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/model"
)

type fakeValidator struct {
	claims *model.AuthClaims
	err    error

	gotToken string
	gotType  string
}

func (v *fakeValidator) ValidateToken(tokenString string, expectedType string) (*model.AuthClaims, error) {
	v.gotToken = tokenString
	v.gotType = expectedType
	return v.claims, v.err
}

func claimsEcho(t *testing.T, got **model.AuthClaims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		*got = claims
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("valid bearer token passes claims through", func(t *testing.T) {
		validator := &fakeValidator{claims: &model.AuthClaims{UserID: "u1", Username: "alice", Role: model.RoleStaff}}
		var got *model.AuthClaims
		handler := NewAuthMiddleware(validator).RequireAuth(claimsEcho(t, &got))

		req := httptest.NewRequest("GET", "/api/v1/students", nil)
		req.Header.Set("Authorization", "Bearer token-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "token-123", validator.gotToken)
		assert.Equal(t, "access", validator.gotType)
		require.NotNil(t, got)
		assert.Equal(t, "u1", got.UserID)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		handler := NewAuthMiddleware(&fakeValidator{}).RequireAuth(okHandler())

		req := httptest.NewRequest("GET", "/api/v1/students", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("non-bearer scheme is rejected", func(t *testing.T) {
		handler := NewAuthMiddleware(&fakeValidator{}).RequireAuth(okHandler())

		req := httptest.NewRequest("GET", "/api/v1/students", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("validator failure is rejected", func(t *testing.T) {
		validator := &fakeValidator{err: errors.New("expired")}
		handler := NewAuthMiddleware(validator).RequireAuth(okHandler())

		req := httptest.NewRequest("GET", "/api/v1/students", nil)
		req.Header.Set("Authorization", "Bearer stale")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthMiddleware_RequireRoles(t *testing.T) {
	newHandler := func(role string, allowed ...string) (*httptest.ResponseRecorder, *http.Request, http.Handler) {
		validator := &fakeValidator{claims: &model.AuthClaims{UserID: "u1", Role: role}}
		mw := NewAuthMiddleware(validator)
		handler := mw.RequireAuth(mw.RequireRoles(allowed...)(okHandler()))

		req := httptest.NewRequest("DELETE", "/api/v1/employees/1", nil)
		req.Header.Set("Authorization", "Bearer token")
		return httptest.NewRecorder(), req, handler
	}

	t.Run("allowed role passes", func(t *testing.T) {
		rec, req, handler := newHandler(model.RoleAdmin, model.RoleAdmin)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("role match is case insensitive", func(t *testing.T) {
		rec, req, handler := newHandler("Admin", model.RoleAdmin)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is forbidden", func(t *testing.T) {
		rec, req, handler := newHandler(model.RoleViewer, model.RoleAdmin, model.RoleStaff)
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing claims are unauthorized", func(t *testing.T) {
		mw := NewAuthMiddleware(&fakeValidator{})
		handler := mw.RequireRoles(model.RoleAdmin)(okHandler())

		req := httptest.NewRequest("GET", "/api/v1/employees", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
