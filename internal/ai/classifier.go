package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"institute-api/internal/metrics"
)

// Classification is the model's verdict on a financial transaction.
type Classification struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// Classifier decides whether a transaction is income or an expense and
// whether it looks completed or pending. When the model is disabled or
// misbehaves it falls back to a keyword heuristic, so Classify always
// produces a usable result.
type Classifier struct {
	client *Client
	logger *slog.Logger
}

func NewClassifier(client *Client, logger *slog.Logger) *Classifier {
	return &Classifier{client: client, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, category string, description string, amount float64) Classification {
	if c.client.Enabled() {
		result, err := c.classifyWithModel(ctx, category, description, amount)
		if err == nil {
			metrics.IncAIClassification("model")
			return result
		}
		c.logger.Warn("transaction classification fell back to heuristic", "error", err)
	}

	metrics.IncAIClassification("heuristic")
	return heuristicClassification(category, description)
}

func (c *Classifier) classifyWithModel(ctx context.Context, category string, description string, amount float64) (Classification, error) {
	prompt := fmt.Sprintf(`Analyze this financial transaction and classify it based on the category and description.

Transaction Data:
- Category: %s
- Description: %s
- Amount: %.2f

First, classify the type as "Income" or "Expense":
- Common Income categories: Salary, Other (if positive amount)
- Common Expense categories: Rent, Utilities, Groceries, Transportation, Entertainment, Healthcare, Education, Other (if negative amount)

Second, classify the status as "Completed" or "Pending" based on the description:
- If the description indicates the transaction is done, finalized, or completed, use "Completed"
- If the description suggests it's upcoming, planned, or not yet finalized, use "Pending"
- Default to "Completed" if unclear

Return only a JSON object with keys "type" ("Income" or "Expense") and "status" ("Completed" or "Pending").`,
		category, description, amount)

	text, err := c.client.Generate(ctx, prompt)
	if err != nil {
		return Classification{}, err
	}

	var result Classification
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &result); err != nil {
		return Classification{}, fmt.Errorf("parse classification %q: %w", truncate(text, 120), err)
	}

	if result.Type != "Income" && result.Type != "Expense" {
		result.Type = "Expense"
	}
	if result.Status != "Completed" && result.Status != "Pending" {
		result.Status = "Completed"
	}

	return result, nil
}

func heuristicClassification(category string, description string) Classification {
	haystack := strings.ToLower(category + " " + description)

	classified := Classification{Type: "Expense", Status: "Completed"}
	for _, keyword := range []string{"salary", "income", "payment received", "tuition", "fee paid"} {
		if strings.Contains(haystack, keyword) {
			classified.Type = "Income"
			break
		}
	}
	for _, keyword := range []string{"upcoming", "planned", "scheduled", "pending"} {
		if strings.Contains(haystack, keyword) {
			classified.Status = "Pending"
			break
		}
	}

	return classified
}

// extractJSONObject cuts the first {...} block out of text that may carry
// markdown fences or prose around the JSON payload.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return text
	}

	return text[start : end+1]
}
