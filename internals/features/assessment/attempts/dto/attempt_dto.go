// file: internals/features/assessment/attempts/dto/attempt_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolhub_backend/internals/features/assessment/attempts/model"
)

/* ==============================
   Requests
============================== */

type StartAttemptRequest struct {
	QuizID uuid.UUID `json:"quiz_id" validate:"required"`
}

type SubmitAnswerRequest struct {
	QuestionID   uuid.UUID `json:"question_id" validate:"required"`
	Response     string    `json:"response" validate:"required"`
	TimeTakenSec *int      `json:"time_taken_sec" validate:"omitempty,gte=0"`
}

// GradeAnswerRequest is the manual-grading payload (teacher surface).
type GradeAnswerRequest struct {
	QuestionID   uuid.UUID `json:"question_id" validate:"required"`
	PointsEarned float64   `json:"points_earned" validate:"gte=0"`
	Feedback     *string   `json:"feedback" validate:"omitempty"`
}

/* ==============================
   Responses
============================== */

type AttemptResponse struct {
	AttemptID         uuid.UUID  `json:"attempt_id"`
	AttemptQuizID     uuid.UUID  `json:"attempt_quiz_id"`
	AttemptStudentID  uuid.UUID  `json:"attempt_student_id"`
	AttemptNumber     int        `json:"attempt_number"`
	AttemptStatus     string     `json:"attempt_status"`
	AttemptStartedAt  time.Time  `json:"attempt_started_at"`
	AttemptFinishedAt *time.Time `json:"attempt_finished_at,omitempty"`
	AttemptTotalScore float64    `json:"attempt_total_score"`
	AttemptMaxScore   float64    `json:"attempt_max_score"`
	AttemptPercentage float64    `json:"attempt_percentage"`
}

func FromAttemptModel(m *model.AttemptModel) AttemptResponse {
	return AttemptResponse{
		AttemptID:         m.AttemptID,
		AttemptQuizID:     m.AttemptQuizID,
		AttemptStudentID:  m.AttemptStudentID,
		AttemptNumber:     m.AttemptNumber,
		AttemptStatus:     string(m.AttemptStatus),
		AttemptStartedAt:  m.AttemptStartedAt,
		AttemptFinishedAt: m.AttemptFinishedAt,
		AttemptTotalScore: m.AttemptTotalScore,
		AttemptMaxScore:   m.AttemptMaxScore,
		AttemptPercentage: m.AttemptPercentage,
	}
}

func FromAttemptModels(items []model.AttemptModel) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(items))
	for i := range items {
		out = append(out, FromAttemptModel(&items[i]))
	}
	return out
}

type AnswerResponse struct {
	AnswerID            uuid.UUID `json:"answer_id"`
	AnswerQuestionID    uuid.UUID `json:"answer_question_id"`
	AnswerStudentAnswer string    `json:"answer_student_answer"`
	AnswerIsCorrect     *bool     `json:"answer_is_correct,omitempty"`
	AnswerPointsEarned  float64   `json:"answer_points_earned"`
	AnswerGradingStatus string    `json:"answer_grading_status"`
	AnswerFeedback      *string   `json:"answer_feedback,omitempty"`
	AnswerTimeTakenSec  *int      `json:"answer_time_taken_sec,omitempty"`
}

func FromAnswerModel(m *model.AnswerModel) AnswerResponse {
	return AnswerResponse{
		AnswerID:            m.AnswerID,
		AnswerQuestionID:    m.AnswerQuestionID,
		AnswerStudentAnswer: m.AnswerStudentAnswer,
		AnswerIsCorrect:     m.AnswerIsCorrect,
		AnswerPointsEarned:  m.AnswerPointsEarned,
		AnswerGradingStatus: string(m.AnswerGradingStatus),
		AnswerFeedback:      m.AnswerFeedback,
		AnswerTimeTakenSec:  m.AnswerTimeTakenSec,
	}
}

func FromAnswerModels(items []model.AnswerModel) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(items))
	for i := range items {
		out = append(out, FromAnswerModel(&items[i]))
	}
	return out
}

type AttemptDetailResponse struct {
	Attempt AttemptResponse  `json:"attempt"`
	Answers []AnswerResponse `json:"answers"`
}
