// file: internals/features/ai/generation/dto/generation_dto.go
package dto

import (
	"github.com/google/uuid"

	gateway "schoolhub_backend/internals/features/ai/gateway"
)

type GenerateQuestionsRequest struct {
	TopicID    uuid.UUID `json:"topic_id" validate:"required"`
	Count      int       `json:"count" validate:"omitempty,gte=1,lte=20"`
	Difficulty string    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Types      []string  `json:"types" validate:"omitempty,dive,oneof=multiple_choice true_false short_answer essay"`
	Persist    bool      `json:"persist"`
}

type GenerateQuestionsResponse struct {
	Source    string                  `json:"source"` // ai_generated | ai_fallback
	Questions []gateway.QuestionDraft `json:"questions"`
	Persisted int                     `json:"persisted"`

	// PersistedIDs only set when persist=true.
	PersistedIDs []uuid.UUID `json:"persisted_ids,omitempty"`
}

type GradeSubjectiveRequest struct {
	QuestionText  string  `json:"question_text" validate:"required"`
	ModelAnswer   string  `json:"model_answer" validate:"required"`
	StudentAnswer string  `json:"student_answer" validate:"required"`
	MaxPoints     float64 `json:"max_points" validate:"required,gt=0"`
}

type AIGradeAttemptResponse struct {
	AttemptID     uuid.UUID `json:"attempt_id"`
	GradedCount   int       `json:"graded_count"`
	PendingCount  int       `json:"pending_count"` // still waiting for a teacher
	SkippedCount  int       `json:"skipped_count"`
}

type AIHealthResponse struct {
	Configured bool   `json:"configured"`
	Model      string `json:"model,omitempty"`
}
