// file: internals/features/ai/gateway/grade.go
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

type GradeSubjectiveRequest struct {
	QuestionText  string
	ModelAnswer   string
	StudentAnswer string
	MaxPoints     float64
}

type GradeSubjectiveResult struct {
	PointsEarned float64  `json:"points_earned"`
	Percentage   float64  `json:"percentage"`
	Feedback     string   `json:"feedback"`
	Strengths    []string `json:"strengths,omitempty"`
	Improvements []string `json:"improvements,omitempty"`
	IsCorrect    bool     `json:"is_correct"`

	// PendingManualReview marks results produced without the provider; the
	// answer keeps grading_status pending_review.
	PendingManualReview bool `json:"pending_manual_review"`
}

const gradeSystemPrompt = "You are a fair grader for school quizzes. " +
	"Respond with a single JSON object only, no prose, no markdown fences."

// GradeSubjective grades one free-text answer. On any failure it returns the
// zero-point manual-review result instead of an error.
func (c *Client) GradeSubjective(ctx context.Context, req GradeSubjectiveRequest) GradeSubjectiveResult {
	if req.MaxPoints <= 0 {
		req.MaxPoints = 1
	}

	text, err := c.complete(ctx, gradeSystemPrompt, buildGradePrompt(req))
	if err != nil {
		log.Printf("[AI] grading failed, flagging for manual review: %v", err)
		return manualReviewResult()
	}

	parsed := ParseCompletion(text, gradeSchema)
	if !parsed.Parsed {
		log.Printf("[AI] unparseable grading payload, flagging for manual review")
		return manualReviewResult()
	}

	var res GradeSubjectiveResult
	if err := json.Unmarshal(parsed.Payload, &res); err != nil {
		return manualReviewResult()
	}

	// clamp to [0, max]
	if res.PointsEarned < 0 {
		res.PointsEarned = 0
	}
	if res.PointsEarned > req.MaxPoints {
		res.PointsEarned = req.MaxPoints
	}
	res.Percentage = 100 * res.PointsEarned / req.MaxPoints
	res.PendingManualReview = false
	return res
}

func buildGradePrompt(req GradeSubjectiveRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade the student answer below out of %.2f points.\n\n", req.MaxPoints)
	fmt.Fprintf(&b, "Question: %s\n", req.QuestionText)
	fmt.Fprintf(&b, "Model answer: %s\n", req.ModelAnswer)
	fmt.Fprintf(&b, "Student answer: %s\n\n", req.StudentAnswer)
	b.WriteString("Return a JSON object with points_earned (number), percentage (0-100), " +
		"feedback (string), strengths (array of strings), improvements (array of strings) " +
		"and is_correct (boolean).")
	return b.String()
}

func manualReviewResult() GradeSubjectiveResult {
	return GradeSubjectiveResult{
		PointsEarned:        0,
		Percentage:          0,
		Feedback:            "Unable to grade automatically. A teacher will review this answer.",
		PendingManualReview: true,
	}
}

/* ==============================
   Class performance narrative
============================== */

type StudentResultSummary struct {
	StudentLabel string  `json:"student_label"`
	Percentage   float64 `json:"percentage"`
}

type ClassInfo struct {
	QuizTitle  string `json:"quiz_title"`
	Subject    string `json:"subject"`
	GradeLevel int    `json:"grade_level"`
}

type PerformanceInsights struct {
	Summary         string   `json:"summary"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

const analyzeSystemPrompt = "You are an educational data analyst. " +
	"Respond with a single JSON object only, no prose, no markdown fences."

// AnalyzeClassPerformance asks for a narrative over per-student percentages.
// On failure the error is wrapped ErrExternalService and callers compute a
// local summary instead.
func (c *Client) AnalyzeClassPerformance(ctx context.Context, results []StudentResultSummary, info ClassInfo) (*PerformanceInsights, error) {
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze class performance for the quiz %q", info.QuizTitle)
	if info.Subject != "" {
		fmt.Fprintf(&b, " (subject %s", info.Subject)
		if info.GradeLevel > 0 {
			fmt.Fprintf(&b, ", grade %d", info.GradeLevel)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, ".\nPer-student percentages: %s\n", string(payload))
	b.WriteString("Return a JSON object with summary (string), strengths, weaknesses " +
		"and recommendations (arrays of strings).")

	text, err := c.complete(ctx, analyzeSystemPrompt, b.String())
	if err != nil {
		return nil, err
	}

	parsed := ParseCompletion(text, insightsSchema)
	if !parsed.Parsed {
		return nil, fmt.Errorf("%w: unparseable insights payload", ErrExternalService)
	}
	var out PerformanceInsights
	if err := json.Unmarshal(parsed.Payload, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return &out, nil
}
