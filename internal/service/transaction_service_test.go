package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/model"
)

func TestValidateTransactionRequest(t *testing.T) {
	t.Run("defaults category and date", func(t *testing.T) {
		req := model.TransactionRequest{Amount: 100, Description: "stationery"}
		require.NoError(t, validateTransactionRequest(&req))
		assert.Equal(t, "Other", req.Category)
		assert.NotEmpty(t, req.Date)
	})

	t.Run("trims whitespace", func(t *testing.T) {
		req := model.TransactionRequest{Amount: 50, Category: " Rent ", Description: " office rent "}
		require.NoError(t, validateTransactionRequest(&req))
		assert.Equal(t, "Rent", req.Category)
		assert.Equal(t, "office rent", req.Description)
	})

	t.Run("rejects non positive amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -10} {
			req := model.TransactionRequest{Amount: amount, Category: "Rent"}
			assert.Error(t, validateTransactionRequest(&req))
		}
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		req := model.TransactionRequest{Amount: 10, Category: "Bribes"}
		assert.Error(t, validateTransactionRequest(&req))
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		req := model.TransactionRequest{Amount: 10, Category: "Rent", Date: "31/12/2026"}
		assert.Error(t, validateTransactionRequest(&req))
	})

	t.Run("keeps a well formed date", func(t *testing.T) {
		req := model.TransactionRequest{Amount: 10, Category: "Rent", Date: "2026-12-31"}
		require.NoError(t, validateTransactionRequest(&req))
		assert.Equal(t, "2026-12-31", req.Date)
	})
}
