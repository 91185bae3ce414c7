// file: internals/features/assessment/attempts/model/answer_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type GradingStatus string

const (
	GradingStatusAuto           GradingStatus = "auto"
	GradingStatusPendingReview  GradingStatus = "pending_review"
	GradingStatusAIGraded       GradingStatus = "ai_graded"
	GradingStatusManuallyGraded GradingStatus = "manually_graded"
)

// AnswerModel is unique per (attempt, question); repeated submissions before
// finalize overwrite in place.
type AnswerModel struct {
	AnswerID         uuid.UUID `gorm:"column:answer_id;type:uuid;primaryKey" json:"answer_id"`
	AnswerTenantID   uuid.UUID `gorm:"column:answer_tenant_id;type:uuid;not null;index" json:"answer_tenant_id"`
	AnswerAttemptID  uuid.UUID `gorm:"column:answer_attempt_id;type:uuid;not null;uniqueIndex:uq_answer_attempt_question" json:"answer_attempt_id"`
	AnswerQuestionID uuid.UUID `gorm:"column:answer_question_id;type:uuid;not null;uniqueIndex:uq_answer_attempt_question" json:"answer_question_id"`

	AnswerStudentAnswer string   `gorm:"column:answer_student_answer;type:text;not null" json:"answer_student_answer"`
	AnswerIsCorrect     *bool    `gorm:"column:answer_is_correct" json:"answer_is_correct,omitempty"`
	AnswerPointsEarned  float64  `gorm:"column:answer_points_earned;type:numeric(6,2);not null;default:0" json:"answer_points_earned"`

	AnswerGradingStatus GradingStatus `gorm:"column:answer_grading_status;type:varchar(16);not null;default:'auto'" json:"answer_grading_status"`
	AnswerFeedback      *string       `gorm:"column:answer_feedback;type:text" json:"answer_feedback,omitempty"`
	AnswerTimeTakenSec  *int          `gorm:"column:answer_time_taken_sec" json:"answer_time_taken_sec,omitempty"`

	AnswerCreatedAt time.Time `gorm:"column:answer_created_at;not null;autoCreateTime" json:"answer_created_at"`
	AnswerUpdatedAt time.Time `gorm:"column:answer_updated_at;not null;autoUpdateTime" json:"answer_updated_at"`
}

func (AnswerModel) TableName() string { return "quiz_answers" }
