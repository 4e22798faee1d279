package ai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(testWriter{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

// modelServer fakes the generateContent endpoint, answering every prompt
// with the given candidate text.
func modelServer(t *testing.T, candidateText string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-goog-api-key"))

		resp := generateResponse{}
		resp.Candidates = append(resp.Candidates, struct {
			Content content `json:"content"`
		}{Content: content{Parts: []part{{Text: candidateText}}}})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClassifier_Classify(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the model verdict when available", func(t *testing.T) {
		srv := modelServer(t, `{"type": "Income", "status": "Pending"}`)
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL
		classifier := NewClassifier(client, newTestLogger())

		got := classifier.Classify(ctx, "Other", "office rent for next month", 1200)
		assert.Equal(t, Classification{Type: "Income", Status: "Pending"}, got)
	})

	t.Run("strips markdown fences around the model output", func(t *testing.T) {
		srv := modelServer(t, "```json\n{\"type\": \"Expense\", \"status\": \"Completed\"}\n```")
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL
		classifier := NewClassifier(client, newTestLogger())

		got := classifier.Classify(ctx, "Rent", "paid office rent", 900)
		assert.Equal(t, Classification{Type: "Expense", Status: "Completed"}, got)
	})

	t.Run("coerces values outside the allowed sets", func(t *testing.T) {
		srv := modelServer(t, `{"type": "Revenue", "status": "Done"}`)
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL
		classifier := NewClassifier(client, newTestLogger())

		got := classifier.Classify(ctx, "Salary", "monthly salary", 3000)
		assert.Equal(t, Classification{Type: "Expense", Status: "Completed"}, got)
	})

	t.Run("falls back to the heuristic when disabled", func(t *testing.T) {
		classifier := NewClassifier(NewClient("", "gemini-2.0-flash"), newTestLogger())

		got := classifier.Classify(ctx, "Salary", "monthly salary payment", 3000)
		assert.Equal(t, "Income", got.Type)
		assert.Equal(t, "Completed", got.Status)
	})

	t.Run("falls back to the heuristic on a failing model", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL
		classifier := NewClassifier(client, newTestLogger())

		got := classifier.Classify(ctx, "Other", "upcoming equipment purchase", 500)
		assert.Equal(t, Classification{Type: "Expense", Status: "Pending"}, got)
	})
}

func TestHeuristicClassification(t *testing.T) {
	cases := []struct {
		name        string
		category    string
		description string
		want        Classification
	}{
		{"plain expense", "Utilities", "electricity bill", Classification{Type: "Expense", Status: "Completed"}},
		{"salary is income", "Salary", "march payroll", Classification{Type: "Income", Status: "Completed"}},
		{"tuition is income", "Other", "tuition fee paid by student", Classification{Type: "Income", Status: "Completed"}},
		{"scheduled is pending", "Rent", "scheduled for next week", Classification{Type: "Expense", Status: "Pending"}},
		{"income and pending combine", "Other", "upcoming payment received confirmation", Classification{Type: "Income", Status: "Pending"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, heuristicClassification(tc.category, tc.description))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSONObject(`the answer is {"a":1} thanks`))
	assert.Equal(t, "no json here", extractJSONObject("no json here"))
}

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled client returns the sentinel", func(t *testing.T) {
		_, err := NewClient("", "gemini-2.0-flash").Generate(ctx, "hello")
		require.ErrorIs(t, err, ErrDisabled)
	})

	t.Run("returns the first candidate text", func(t *testing.T) {
		srv := modelServer(t, "hello back")
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL

		text, err := client.Generate(ctx, "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello back", text)
	})

	t.Run("non-200 responses surface as errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad key", http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL

		_, err := client.Generate(ctx, "hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("empty candidate list is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"candidates": []}`))
		}))
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL

		_, err := client.Generate(ctx, "hello")
		require.Error(t, err)
	})
}
