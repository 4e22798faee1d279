package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"institute-api/internal/model"
)

func TestEvaluator_Evaluate(t *testing.T) {
	ctx := context.Background()
	student := model.Student{Name: "Ada Lovelace", Performance: "Excellent", OverallAttendance: 95}

	t.Run("parses the model verdict", func(t *testing.T) {
		srv := modelServer(t, `{"overall_rating": 4.5, "strengths": ["consistent attendance"]}`)
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL

		evaluation, err := NewEvaluator(client).Evaluate(ctx, student)
		require.NoError(t, err)

		assert.Equal(t, "gemini-2.0-flash", evaluation.Model)
		assert.NotEmpty(t, evaluation.GeneratedAt)
		assert.Equal(t, 4.5, evaluation.Result["overall_rating"])
	})

	t.Run("keeps unparseable replies under raw", func(t *testing.T) {
		srv := modelServer(t, "the student is doing great")
		defer srv.Close()

		client := NewClient("test-key", "gemini-2.0-flash")
		client.baseURL = srv.URL

		evaluation, err := NewEvaluator(client).Evaluate(ctx, student)
		require.NoError(t, err)
		assert.Equal(t, "the student is doing great", evaluation.Result["raw"])
	})

	t.Run("disabled client propagates the sentinel", func(t *testing.T) {
		_, err := NewEvaluator(NewClient("", "gemini-2.0-flash")).Evaluate(ctx, student)
		assert.ErrorIs(t, err, ErrDisabled)
	})
}

func TestBuildEvaluationPrompt(t *testing.T) {
	gpa := 3.75
	student := model.Student{
		Name:              "Ada Lovelace",
		Performance:       "Excellent",
		OverallAttendance: 92,
		GPA:               &gpa,
		Grades:            map[string]string{"Mathematics": "A"},
		Feedback: []map[string]any{
			{"type": "instructor", "instructor": "Dr. Kay", "rating": 5, "comments": "Outstanding work", "recommendations": "Mentor juniors"},
			{"type": "self", "rating": 4},
		},
	}

	prompt := buildEvaluationPrompt(student)

	assert.Contains(t, prompt, "Attendance: 92%")
	assert.Contains(t, prompt, "GPA: 3.75")
	assert.Contains(t, prompt, "Mathematics")
	assert.Contains(t, prompt, "Instructor (Dr. Kay): Rating 5/5")
	assert.Contains(t, prompt, "Recommendations: Mentor juniors")
	assert.Contains(t, prompt, "Self (Self): Rating 4/5")
	assert.Contains(t, prompt, "No comments")
	assert.Contains(t, prompt, "overall_rating")
}

func TestBuildEvaluationPrompt_NoGPA(t *testing.T) {
	prompt := buildEvaluationPrompt(model.Student{Name: "Blank Slate"})
	assert.Contains(t, prompt, "GPA: N/A")
	assert.NotContains(t, prompt, "Manual Feedback")
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Instructor", capitalize("instructor"))
	assert.Equal(t, "Unknown", capitalize(""))
}
