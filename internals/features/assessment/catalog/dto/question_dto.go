// file: internals/features/assessment/catalog/dto/question_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolhub_backend/internals/features/assessment/catalog/model"
)

/* ==============================
   CREATE (POST /questions)
============================== */

type CreateQuestionRequest struct {
	QuestionTopicID    uuid.UUID         `json:"question_topic_id" validate:"required"`
	QuestionText       string            `json:"question_text" validate:"required"`
	QuestionType       string            `json:"question_type" validate:"required,oneof=multiple_choice true_false short_answer essay"`
	QuestionDifficulty string            `json:"question_difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionOptions    map[string]string `json:"question_options" validate:"omitempty"`
	QuestionCorrectAnswer string         `json:"question_correct_answer" validate:"required,max=500"`
	QuestionExplanation   *string        `json:"question_explanation" validate:"omitempty"`
	QuestionPoints        *float64       `json:"question_points" validate:"omitempty,gt=0"`
	QuestionTimeLimitSec  *int           `json:"question_time_limit_sec" validate:"omitempty,gte=0"`
}

// ToModel builds the model; ValidateShape still runs in the controller.
func (r *CreateQuestionRequest) ToModel(tenantID uuid.UUID) (*model.QuestionModel, error) {
	difficulty := model.DifficultyMedium
	if r.QuestionDifficulty != "" {
		difficulty = model.DifficultyLevel(r.QuestionDifficulty)
	}
	points := 1.0
	if r.QuestionPoints != nil {
		points = *r.QuestionPoints
	}

	m := &model.QuestionModel{
		QuestionID:            uuid.New(),
		QuestionTenantID:      tenantID,
		QuestionTopicID:       r.QuestionTopicID,
		QuestionText:          strings.TrimSpace(r.QuestionText),
		QuestionType:          model.QuestionType(r.QuestionType),
		QuestionDifficulty:    difficulty,
		QuestionCorrectAnswer: strings.TrimSpace(r.QuestionCorrectAnswer),
		QuestionExplanation:   trimPtr(r.QuestionExplanation),
		QuestionPoints:        points,
		QuestionTimeLimitSec:  r.QuestionTimeLimitSec,
		QuestionSource:        model.QuestionSourceManual,
	}

	if m.QuestionType == model.QuestionTypeMultipleChoice {
		if err := m.SetOptions(r.QuestionOptions, r.QuestionCorrectAnswer); err != nil {
			return nil, err
		}
	}
	return m, nil
}

/* ==============================
   PATCH (PATCH /questions/:id)
============================== */

type PatchQuestionRequest struct {
	QuestionText          *string           `json:"question_text" validate:"omitempty"`
	QuestionDifficulty    *string           `json:"question_difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionOptions       map[string]string `json:"question_options" validate:"omitempty"`
	QuestionCorrectAnswer *string           `json:"question_correct_answer" validate:"omitempty,max=500"`
	QuestionExplanation   *string           `json:"question_explanation" validate:"omitempty"`
	QuestionPoints        *float64          `json:"question_points" validate:"omitempty,gt=0"`
	QuestionTimeLimitSec  *int              `json:"question_time_limit_sec" validate:"omitempty,gte=0"`
}

func (r *PatchQuestionRequest) Apply(m *model.QuestionModel) error {
	if r.QuestionText != nil {
		m.QuestionText = strings.TrimSpace(*r.QuestionText)
	}
	if r.QuestionDifficulty != nil {
		m.QuestionDifficulty = model.DifficultyLevel(*r.QuestionDifficulty)
	}
	if r.QuestionCorrectAnswer != nil {
		m.QuestionCorrectAnswer = strings.TrimSpace(*r.QuestionCorrectAnswer)
	}
	if r.QuestionExplanation != nil {
		m.QuestionExplanation = trimPtr(r.QuestionExplanation)
	}
	if r.QuestionPoints != nil {
		m.QuestionPoints = *r.QuestionPoints
	}
	if r.QuestionTimeLimitSec != nil {
		m.QuestionTimeLimitSec = r.QuestionTimeLimitSec
	}
	if r.QuestionOptions != nil && m.QuestionType == model.QuestionTypeMultipleChoice {
		if err := m.SetOptions(r.QuestionOptions, m.QuestionCorrectAnswer); err != nil {
			return err
		}
	}
	return m.ValidateShape()
}

/* ==============================
   RESPONSE
============================== */

type QuestionResponse struct {
	QuestionID            uuid.UUID         `json:"question_id"`
	QuestionTopicID       uuid.UUID         `json:"question_topic_id"`
	QuestionText          string            `json:"question_text"`
	QuestionType          string            `json:"question_type"`
	QuestionDifficulty    string            `json:"question_difficulty"`
	QuestionOptions       map[string]string `json:"question_options,omitempty"`
	QuestionCorrectAnswer string            `json:"question_correct_answer"`
	QuestionExplanation   *string           `json:"question_explanation,omitempty"`
	QuestionPoints        float64           `json:"question_points"`
	QuestionTimeLimitSec  *int              `json:"question_time_limit_sec,omitempty"`
	QuestionSource        string            `json:"question_source"`
	QuestionCreatedAt     time.Time         `json:"question_created_at"`
}

func FromQuestionModel(m *model.QuestionModel) QuestionResponse {
	opts, _ := m.OptionsMap()
	return QuestionResponse{
		QuestionID:            m.QuestionID,
		QuestionTopicID:       m.QuestionTopicID,
		QuestionText:          m.QuestionText,
		QuestionType:          string(m.QuestionType),
		QuestionDifficulty:    string(m.QuestionDifficulty),
		QuestionOptions:       opts,
		QuestionCorrectAnswer: m.QuestionCorrectAnswer,
		QuestionExplanation:   m.QuestionExplanation,
		QuestionPoints:        m.QuestionPoints,
		QuestionTimeLimitSec:  m.QuestionTimeLimitSec,
		QuestionSource:        string(m.QuestionSource),
		QuestionCreatedAt:     m.QuestionCreatedAt,
	}
}

func FromQuestionModels(items []model.QuestionModel) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(items))
	for i := range items {
		out = append(out, FromQuestionModel(&items[i]))
	}
	return out
}
