package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"institute-api/internal/model"
)

// Evaluation is the structured output of a student performance review.
// Result carries the model's JSON verdict; when the model replied with
// something that is not valid JSON, the reply is kept under the "raw" key.
type Evaluation struct {
	GeneratedAt string         `json:"generated_at"`
	Model       string         `json:"model"`
	Result      map[string]any `json:"result"`
	RawText     string         `json:"raw_text,omitempty"`
}

// Evaluator asks the model for an unbiased review of a student's
// performance. Unlike the transaction classifier there is no meaningful
// fallback, so errors propagate to the caller.
type Evaluator struct {
	client *Client
}

func NewEvaluator(client *Client) *Evaluator {
	return &Evaluator{client: client}
}

func (e *Evaluator) Evaluate(ctx context.Context, student model.Student) (Evaluation, error) {
	text, err := e.client.Generate(ctx, buildEvaluationPrompt(student))
	if err != nil {
		return Evaluation{}, err
	}

	evaluation := Evaluation{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Model:       e.client.model,
		RawText:     text,
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(extractJSONObject(text)), &result); err != nil {
		result = map[string]any{"raw": text}
	}
	evaluation.Result = result

	return evaluation, nil
}

func buildEvaluationPrompt(student model.Student) string {
	var feedback strings.Builder
	if len(student.Feedback) > 0 {
		feedback.WriteString("\nManual Feedback:\n")
		for _, f := range student.Feedback {
			kind, _ := f["type"].(string)
			name := feedbackAuthor(kind, f)
			rating := f["rating"]
			if rating == nil {
				rating = "N/A"
			}
			comments, _ := f["comments"].(string)
			if comments == "" {
				comments = "No comments"
			}

			fmt.Fprintf(&feedback, "- %s (%s): Rating %v/5\n", capitalize(kind), name, rating)
			fmt.Fprintf(&feedback, "  Comments: %s\n", comments)
			if recommendations, ok := f["recommendations"].(string); ok && recommendations != "" {
				fmt.Fprintf(&feedback, "  Recommendations: %s\n", recommendations)
			}
			feedback.WriteString("\n")
		}
	}

	achievements, _ := json.Marshal(student.Achievements)
	grades, _ := json.Marshal(student.Grades)

	gpa := "N/A"
	if student.GPA != nil {
		gpa = fmt.Sprintf("%.2f", *student.GPA)
	}

	return fmt.Sprintf(`Analyze this student's performance and provide unbiased feedback in JSON format based on all available data: achievements, attendance, performance, grades, and manual feedback.

Student Data:
- Achievements: %s
- Attendance: %d%%
- Performance: %s
- GPA: %s
- Grades: %s
%s
Provide the response as JSON with these keys:
 - overall_rating (0-5)
 - performance_rating (0-5)
 - participation_rating (0-5)
 - attitude_rating (0-5)
 - skills_rating (0-5)
 - strengths: list of 3-5 items
 - areas_for_improvement: list of 3-5 items
 - recommendations: list of actionable recommendations

Consider all manual feedback (instructor, peer, self) in your analysis and ratings. Return only valid JSON.`,
		achievements, student.OverallAttendance, student.Performance, gpa, grades, feedback.String())
}

func capitalize(s string) string {
	if s == "" {
		return "Unknown"
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

func feedbackAuthor(kind string, f map[string]any) string {
	switch kind {
	case "instructor":
		if name, ok := f["instructor"].(string); ok && name != "" {
			return name
		}
		return "Unknown Instructor"
	case "peer":
		if name, ok := f["peer"].(string); ok && name != "" {
			return name
		}
		return "Unknown Peer"
	case "self":
		return "Self"
	default:
		return "Unknown"
	}
}
