// file: internals/features/analytics/service/analytics_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	gateway "schoolhub_backend/internals/features/ai/gateway"
	attemptmodel "schoolhub_backend/internals/features/assessment/attempts/model"
	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	quizmodel "schoolhub_backend/internals/features/assessment/quizzes/model"
)

var ErrNotFound = errors.New("analytics: not found")

const passThreshold = 60.0

const (
	InsightsSourceAI       = "ai"
	InsightsSourceComputed = "computed"
)

type Service struct {
	db      *gorm.DB
	gateway *gateway.Client
}

func NewService(db *gorm.DB, gw *gateway.Client) *Service {
	return &Service{db: db, gateway: gw}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

/* ==============================
   Quiz performance
============================== */

type QuestionMiss struct {
	QuestionID   uuid.UUID `json:"question_id"`
	QuestionText string    `json:"question_text"`
	MissCount    int       `json:"miss_count"`
}

type QuizPerformanceResult struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	AttemptCount   int       `json:"attempt_count"`
	AveragePercent float64   `json:"average_percent"`
	PassRate       float64   `json:"pass_rate"` // share of attempts >= 60%
	MinPercent     float64   `json:"min_percent"`
	MaxPercent     float64   `json:"max_percent"`
	MostMissed     []QuestionMiss `json:"most_missed"`

	Insights       *gateway.PerformanceInsights `json:"insights,omitempty"`
	InsightsSource string                       `json:"insights_source"` // ai | computed
}

// QuizPerformance aggregates submitted attempts of one quiz and asks the
// gateway for a narrative. Gateway failure downgrades to the computed
// summary, never to an error.
func (s *Service) QuizPerformance(ctx context.Context, tenantID, quizID uuid.UUID) (*QuizPerformanceResult, error) {
	var quiz quizmodel.QuizModel
	if err := s.db.WithContext(ctx).
		First(&quiz, "quiz_id = ? AND quiz_tenant_id = ?", quizID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var attempts []attemptmodel.AttemptModel
	if err := s.db.WithContext(ctx).
		Where("attempt_tenant_id = ? AND attempt_quiz_id = ? AND attempt_status = ?",
			tenantID, quizID, attemptmodel.AttemptStatusSubmitted).
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	out := &QuizPerformanceResult{
		QuizID:     quiz.QuizID,
		QuizTitle:  quiz.QuizTitle,
		MostMissed: []QuestionMiss{},
	}
	if len(attempts) == 0 {
		out.Insights = computedQuizInsights(out)
		out.InsightsSource = InsightsSourceComputed
		return out, nil
	}

	var sum float64
	out.MinPercent = attempts[0].AttemptPercentage
	out.MaxPercent = attempts[0].AttemptPercentage
	passed := 0
	for _, a := range attempts {
		sum += a.AttemptPercentage
		if a.AttemptPercentage < out.MinPercent {
			out.MinPercent = a.AttemptPercentage
		}
		if a.AttemptPercentage > out.MaxPercent {
			out.MaxPercent = a.AttemptPercentage
		}
		if a.AttemptPercentage >= passThreshold {
			passed++
		}
	}
	out.AttemptCount = len(attempts)
	out.AveragePercent = round2(sum / float64(len(attempts)))
	out.PassRate = round2(100 * float64(passed) / float64(len(attempts)))

	missed, err := s.mostMissed(ctx, tenantID, attempts)
	if err != nil {
		return nil, err
	}
	out.MostMissed = missed

	summaries := make([]gateway.StudentResultSummary, 0, len(attempts))
	for i, a := range attempts {
		summaries = append(summaries, gateway.StudentResultSummary{
			StudentLabel: fmt.Sprintf("student_%d", i+1),
			Percentage:   a.AttemptPercentage,
		})
	}
	var topic catalogmodel.TopicModel
	if err := s.db.WithContext(ctx).
		First(&topic, "topic_id = ?", quiz.QuizTopicID).Error; err != nil {
		log.Printf("[ANALYTICS] topic lookup failed for quiz %s, sending blank class info: %v", quizID, err)
	}

	insights, err := s.gateway.AnalyzeClassPerformance(ctx, summaries, gateway.ClassInfo{
		QuizTitle:  quiz.QuizTitle,
		Subject:    topic.TopicSubject,
		GradeLevel: topic.TopicGradeLevel,
	})
	if err != nil {
		log.Printf("[ANALYTICS] narrative unavailable, using computed summary: %v", err)
		out.Insights = computedQuizInsights(out)
		out.InsightsSource = InsightsSourceComputed
		return out, nil
	}
	out.Insights = insights
	out.InsightsSource = InsightsSourceAI
	return out, nil
}

// mostMissed counts incorrect answers per question over the given attempts,
// worst first, top 5. Question text resolves through Unscoped so questions
// deleted after the fact still label their row.
func (s *Service) mostMissed(ctx context.Context, tenantID uuid.UUID, attempts []attemptmodel.AttemptModel) ([]QuestionMiss, error) {
	ids := make([]uuid.UUID, 0, len(attempts))
	for _, a := range attempts {
		ids = append(ids, a.AttemptID)
	}

	var answers []attemptmodel.AnswerModel
	if err := s.db.WithContext(ctx).
		Where("answer_tenant_id = ? AND answer_attempt_id IN ?", tenantID, ids).
		Find(&answers).Error; err != nil {
		return nil, err
	}

	misses := map[uuid.UUID]int{}
	for _, ans := range answers {
		if ans.AnswerIsCorrect != nil && !*ans.AnswerIsCorrect {
			misses[ans.AnswerQuestionID]++
		}
	}
	if len(misses) == 0 {
		return []QuestionMiss{}, nil
	}

	qids := make([]uuid.UUID, 0, len(misses))
	for id := range misses {
		qids = append(qids, id)
	}
	var questions []catalogmodel.QuestionModel
	if err := s.db.WithContext(ctx).Unscoped().
		Where("question_id IN ?", qids).
		Find(&questions).Error; err != nil {
		return nil, err
	}
	textByID := make(map[uuid.UUID]string, len(questions))
	for _, q := range questions {
		textByID[q.QuestionID] = q.QuestionText
	}

	out := make([]QuestionMiss, 0, len(misses))
	for id, count := range misses {
		out = append(out, QuestionMiss{
			QuestionID:   id,
			QuestionText: textByID[id],
			MissCount:    count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MissCount != out[j].MissCount {
			return out[i].MissCount > out[j].MissCount
		}
		return out[i].QuestionID.String() < out[j].QuestionID.String()
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out, nil
}

func computedQuizInsights(r *QuizPerformanceResult) *gateway.PerformanceInsights {
	if r.AttemptCount == 0 {
		return &gateway.PerformanceInsights{
			Summary:         "No submitted attempts yet.",
			Recommendations: []string{"Check back after students have taken the quiz."},
		}
	}
	ins := &gateway.PerformanceInsights{
		Summary: fmt.Sprintf(
			"Basic analysis: %d attempts, class average %.2f%%, pass rate %.2f%% (threshold %.0f%%).",
			r.AttemptCount, r.AveragePercent, r.PassRate, passThreshold),
		Recommendations: []string{
			"Review the most-missed questions with the class.",
		},
	}
	if r.PassRate < 50 {
		ins.Recommendations = append(ins.Recommendations,
			"Pass rate is below half the class; consider reteaching the topic before the next assessment.")
	}
	return ins
}

/* ==============================
   Student report
============================== */

type StudentReportResult struct {
	StudentID      uuid.UUID `json:"student_id"`
	AttemptCount   int       `json:"attempt_count"`
	AveragePercent float64   `json:"average_percent"`
	BestPercent    float64   `json:"best_percent"`
	LatestPercent  float64   `json:"latest_percent"`
	Trend          string    `json:"trend"` // improving | declining | steady

	Insights       *gateway.PerformanceInsights `json:"insights,omitempty"`
	InsightsSource string                       `json:"insights_source"`
}

// StudentReport aggregates one student's submitted attempts across quizzes.
func (s *Service) StudentReport(ctx context.Context, tenantID, studentID uuid.UUID) (*StudentReportResult, error) {
	var attempts []attemptmodel.AttemptModel
	if err := s.db.WithContext(ctx).
		Where("attempt_tenant_id = ? AND attempt_student_id = ? AND attempt_status = ?",
			tenantID, studentID, attemptmodel.AttemptStatusSubmitted).
		Order("attempt_finished_at ASC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}

	out := &StudentReportResult{StudentID: studentID, Trend: "steady"}
	if len(attempts) == 0 {
		out.Insights = &gateway.PerformanceInsights{Summary: "No submitted attempts yet."}
		out.InsightsSource = InsightsSourceComputed
		return out, nil
	}

	var sum float64
	for _, a := range attempts {
		sum += a.AttemptPercentage
		if a.AttemptPercentage > out.BestPercent {
			out.BestPercent = a.AttemptPercentage
		}
	}
	out.AttemptCount = len(attempts)
	out.AveragePercent = round2(sum / float64(len(attempts)))
	out.LatestPercent = attempts[len(attempts)-1].AttemptPercentage

	if len(attempts) >= 2 {
		prev := attempts[len(attempts)-2].AttemptPercentage
		switch {
		case out.LatestPercent > prev+1:
			out.Trend = "improving"
		case out.LatestPercent < prev-1:
			out.Trend = "declining"
		}
	}

	summaries := make([]gateway.StudentResultSummary, 0, len(attempts))
	for i, a := range attempts {
		summaries = append(summaries, gateway.StudentResultSummary{
			StudentLabel: fmt.Sprintf("attempt_%d", i+1),
			Percentage:   a.AttemptPercentage,
		})
	}
	insights, err := s.gateway.AnalyzeClassPerformance(ctx, summaries, gateway.ClassInfo{
		QuizTitle: "student progress report",
	})
	if err != nil {
		log.Printf("[ANALYTICS] student narrative unavailable, using computed summary: %v", err)
		out.Insights = &gateway.PerformanceInsights{
			Summary: fmt.Sprintf(
				"Basic analysis: %d attempts, average %.2f%%, best %.2f%%, latest %.2f%% (%s).",
				out.AttemptCount, out.AveragePercent, out.BestPercent, out.LatestPercent, out.Trend),
		}
		out.InsightsSource = InsightsSourceComputed
		return out, nil
	}
	out.Insights = insights
	out.InsightsSource = InsightsSourceAI
	return out, nil
}
