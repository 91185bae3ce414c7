// file: internals/features/ai/gateway/client_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
}

func testClient(url string, timeoutSec int) *Client {
	return NewClient(Config{
		APIURL:     url,
		APIKey:     "test-key",
		Model:      "test-model",
		TimeoutSec: timeoutSec,
	})
}

func TestGenerateQuestions_ParsesValidCompletion(t *testing.T) {
	payload := `Here you go:
[
  {"question_text": "What gas do plants absorb?", "question_type": "multiple_choice",
   "options": {"A": "CO2", "B": "O2"}, "correct_answer": "a",
   "explanation": "Photosynthesis uses CO2.", "points": 2, "difficulty": "easy"},
  {"question_text": "Plants make their own food.", "question_type": "true_false",
   "correct_answer": "TRUE"}
]`
	srv := completionServer(t, payload)
	defer srv.Close()

	res := testClient(srv.URL, 5).GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Photosynthesis",
		Count:     2,
	})
	assert.Equal(t, SourceAI, res.Source)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, "A", res.Questions[0].CorrectAnswer)
	assert.Equal(t, 2.0, res.Questions[0].Points)
	assert.Equal(t, "true", res.Questions[1].CorrectAnswer)
	assert.Equal(t, 1.0, res.Questions[1].Points)      // defaulted
	assert.Equal(t, "medium", res.Questions[1].Difficulty) // defaulted
}

func TestGenerateQuestions_TruncatesToCount(t *testing.T) {
	payload := `[
	  {"question_text": "Q1", "question_type": "short_answer", "correct_answer": "a1"},
	  {"question_text": "Q2", "question_type": "short_answer", "correct_answer": "a2"},
	  {"question_text": "Q3", "question_type": "short_answer", "correct_answer": "a3"}
	]`
	srv := completionServer(t, payload)
	defer srv.Close()

	res := testClient(srv.URL, 5).GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Anything",
		Count:     2,
	})
	assert.Equal(t, SourceAI, res.Source)
	assert.Len(t, res.Questions, 2)
}

func TestGenerateQuestions_MalformedFallsBack(t *testing.T) {
	srv := completionServer(t, "Sorry, I cannot produce JSON today.")
	defer srv.Close()

	res := testClient(srv.URL, 5).GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Fractions",
		Count:     3,
	})
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Questions, 3)
	for _, q := range res.Questions {
		assert.NotEmpty(t, q.QuestionText)
		assert.NotEmpty(t, q.CorrectAnswer)
	}
}

func TestGenerateQuestions_TimeoutFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	defer srv.Close()

	client := testClient(srv.URL, 1)
	start := time.Now()
	res := client.GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Gravity",
		Count:     2,
	})
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Questions, 2)
}

func TestGenerateQuestions_UnconfiguredFallsBack(t *testing.T) {
	client := NewClient(Config{APIURL: "http://unused", Model: "m"})
	assert.False(t, client.Configured())

	res := client.GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Cells",
		Count:     1,
	})
	assert.Equal(t, SourceFallback, res.Source)
	assert.Len(t, res.Questions, 1)
}

func TestGenerateQuestions_ProviderErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	res := testClient(srv.URL, 5).GenerateQuestions(context.Background(), GenerateQuestionsRequest{
		TopicName: "Atoms",
		Count:     2,
	})
	assert.Equal(t, SourceFallback, res.Source)
}

func TestGradeSubjective_ClampsPoints(t *testing.T) {
	payload := `{"points_earned": 99, "percentage": 100, "feedback": "Excellent work",
	  "strengths": ["clear"], "improvements": [], "is_correct": true}`
	srv := completionServer(t, payload)
	defer srv.Close()

	res := testClient(srv.URL, 5).GradeSubjective(context.Background(), GradeSubjectiveRequest{
		QuestionText:  "Explain photosynthesis",
		ModelAnswer:   "Plants convert light to chemical energy.",
		StudentAnswer: "Plants use sunlight to make food.",
		MaxPoints:     5,
	})
	assert.False(t, res.PendingManualReview)
	assert.Equal(t, 5.0, res.PointsEarned)
	assert.Equal(t, 100.0, res.Percentage)
	assert.Equal(t, "Excellent work", res.Feedback)
}

func TestGradeSubjective_FailureFlagsManualReview(t *testing.T) {
	srv := completionServer(t, "no json here")
	defer srv.Close()

	res := testClient(srv.URL, 5).GradeSubjective(context.Background(), GradeSubjectiveRequest{
		QuestionText:  "Explain",
		ModelAnswer:   "answer",
		StudentAnswer: "attempt",
		MaxPoints:     5,
	})
	assert.True(t, res.PendingManualReview)
	assert.Equal(t, 0.0, res.PointsEarned)
	assert.NotEmpty(t, res.Feedback)
}

func TestAnalyzeClassPerformance_ErrorIsTyped(t *testing.T) {
	srv := completionServer(t, "not json")
	defer srv.Close()

	_, err := testClient(srv.URL, 5).AnalyzeClassPerformance(context.Background(),
		[]StudentResultSummary{{StudentLabel: "student_1", Percentage: 80}},
		ClassInfo{QuizTitle: "Quiz"})
	assert.ErrorIs(t, err, ErrExternalService)
}

func TestAnalyzeClassPerformance_ParsesInsights(t *testing.T) {
	payload := "```json\n" + `{"summary": "Class did well overall.",
	  "strengths": ["vocabulary"], "weaknesses": ["long division"],
	  "recommendations": ["review long division"]}` + "\n```"
	srv := completionServer(t, payload)
	defer srv.Close()

	out, err := testClient(srv.URL, 5).AnalyzeClassPerformance(context.Background(),
		[]StudentResultSummary{{StudentLabel: "student_1", Percentage: 80}},
		ClassInfo{QuizTitle: "Quiz"})
	require.NoError(t, err)
	assert.Equal(t, "Class did well overall.", out.Summary)
	assert.Equal(t, []string{"review long division"}, out.Recommendations)
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		ok   bool
	}{
		{"bare array", `[{"a":1}]`, true},
		{"fenced object", "```json\n{\"a\": 1}\n```", true},
		{"prose around array", `Sure! [1,2,3] hope that helps`, true},
		{"no json", "nothing here", false},
		{"unbalanced", `[{"a":1`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := extractJSON(tc.in)
			assert.Equal(t, tc.ok, ok)
		})
	}
}
