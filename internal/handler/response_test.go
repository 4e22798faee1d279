package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/ai"
	"institute-api/internal/model"
	"institute-api/pkg/apierror"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var resp model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusCreated, map[string]any{"id": 1}, &model.Meta{Total: 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"user not found", model.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate user", model.ErrUserAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"bad credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"missing auth", model.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", model.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"expired token", model.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"employee not found", model.ErrEmployeeNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"student not found", model.ErrStudentNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"transaction not found", model.ErrTransactionNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"email taken", model.ErrEmailTaken, http.StatusConflict, "ALREADY_EXISTS"},
		{"trash entry not found", model.ErrTrashEntryNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"not restorable", model.ErrNotRestorable, http.StatusNotFound, "NOT_FOUND"},
		{"ai disabled", ai.ErrDisabled, http.StatusServiceUnavailable, "AI_UNAVAILABLE"},
		{"invalid input", model.ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			resp := decodeResponse(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}

	t.Run("wrapped sentinels still map", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, fmt.Errorf("%w: entity kind %q cannot be trashed", model.ErrInvalidInput, "invoice"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Contains(t, resp.Error.Details, "invoice")
	})

	t.Run("api errors carry their own status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, apierror.BadRequest("name is required", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeResponse(t, rec)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
		assert.Equal(t, "name is required", resp.Error.Message)
	})
}
