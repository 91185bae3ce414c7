// file: internals/features/assessment/catalog/model/question_model.go
package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
	QuestionTypeEssay          QuestionType = "essay"
)

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

type QuestionSource string

const (
	QuestionSourceManual     QuestionSource = "manual"
	QuestionSourceAI         QuestionSource = "ai_generated"
	QuestionSourceAIFallback QuestionSource = "ai_fallback"
)

type QuestionModel struct {
	QuestionID       uuid.UUID       `gorm:"column:question_id;type:uuid;primaryKey" json:"question_id"`
	QuestionTenantID uuid.UUID       `gorm:"column:question_tenant_id;type:uuid;not null;index" json:"question_tenant_id"`
	QuestionTopicID  uuid.UUID       `gorm:"column:question_topic_id;type:uuid;not null;index" json:"question_topic_id"`
	QuestionText     string          `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionType     QuestionType    `gorm:"column:question_type;type:varchar(16);not null" json:"question_type"`
	QuestionDifficulty DifficultyLevel `gorm:"column:question_difficulty;type:varchar(8);not null;default:'medium'" json:"question_difficulty"`

	// Options only for multiple_choice: {"A":"...","B":"..."}
	QuestionOptions       datatypes.JSON `gorm:"column:question_options;type:jsonb" json:"question_options,omitempty"`
	QuestionCorrectAnswer string         `gorm:"column:question_correct_answer;type:varchar(500);not null" json:"question_correct_answer"`
	QuestionExplanation   *string        `gorm:"column:question_explanation;type:text" json:"question_explanation,omitempty"`

	QuestionPoints       float64        `gorm:"column:question_points;type:numeric(6,2);not null;default:1" json:"question_points"`
	QuestionTimeLimitSec *int           `gorm:"column:question_time_limit_sec" json:"question_time_limit_sec,omitempty"`
	QuestionSource       QuestionSource `gorm:"column:question_source;type:varchar(16);not null;default:'manual'" json:"question_source"`

	QuestionCreatedAt time.Time      `gorm:"column:question_created_at;not null;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time      `gorm:"column:question_updated_at;not null;autoUpdateTime" json:"question_updated_at"`
	QuestionDeletedAt gorm.DeletedAt `gorm:"column:question_deleted_at;index" json:"question_deleted_at,omitempty"`
}

func (QuestionModel) TableName() string { return "questions" }

/* ------------------------
   Helpers
------------------------ */

func (m *QuestionModel) IsObjective() bool {
	return m.QuestionType == QuestionTypeMultipleChoice || m.QuestionType == QuestionTypeTrueFalse
}

func (m *QuestionModel) IsSubjective() bool { return !m.IsObjective() }

// SetOptions stores the option map {"A":"..","B":".."} and the correct key.
func (m *QuestionModel) SetOptions(opts map[string]string, correct string) error {
	if m.QuestionType != QuestionTypeMultipleChoice {
		return errors.New("options are only valid for multiple_choice questions")
	}
	correct = strings.ToUpper(strings.TrimSpace(correct))
	if correct == "" {
		return errors.New("correct key is required ('A'..'D')")
	}
	if _, ok := opts[correct]; !ok {
		return errors.New("correct key is not present in the options map")
	}
	for k := range opts {
		if !inSet(strings.ToUpper(k), "A", "B", "C", "D") {
			return errors.New("options contain a key outside A..D")
		}
	}
	if len(opts) < 2 {
		return errors.New("at least 2 options required")
	}
	b, _ := json.Marshal(opts)
	m.QuestionOptions = datatypes.JSON(b)
	m.QuestionCorrectAnswer = correct
	return nil
}

// OptionsMap decodes the stored options; nil when absent.
func (m *QuestionModel) OptionsMap() (map[string]string, error) {
	if len(m.QuestionOptions) == 0 {
		return nil, nil
	}
	var opts map[string]string
	if err := json.Unmarshal(m.QuestionOptions, &opts); err != nil {
		return nil, err
	}
	return opts, nil
}

// ValidateShape mirrors the DB CHECK constraints so bad payloads fail fast in
// the app layer.
func (m *QuestionModel) ValidateShape() error {
	if strings.TrimSpace(m.QuestionText) == "" {
		return errors.New("question text is required")
	}
	if m.QuestionPoints <= 0 {
		return errors.New("question points must be positive")
	}
	switch m.QuestionDifficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return errors.New("difficulty must be easy, medium or hard")
	}

	switch m.QuestionType {
	case QuestionTypeMultipleChoice:
		if len(m.QuestionOptions) == 0 {
			return errors.New("multiple_choice: options are required")
		}
		var obj map[string]string
		if err := json.Unmarshal(m.QuestionOptions, &obj); err != nil || obj == nil {
			return errors.New("multiple_choice: options must be a JSON object of label→text")
		}
		if len(obj) < 2 {
			return errors.New("multiple_choice: at least 2 options required")
		}
		for k := range obj {
			if !inSet(strings.ToUpper(k), "A", "B", "C", "D") {
				return errors.New("multiple_choice: options contain a key outside A..D")
			}
		}
		c := strings.ToUpper(strings.TrimSpace(m.QuestionCorrectAnswer))
		if c == "" {
			return errors.New("multiple_choice: correct answer key is required")
		}
		if _, ok := obj[c]; !ok {
			return errors.New("multiple_choice: correct answer key not present in options")
		}
	case QuestionTypeTrueFalse:
		if len(m.QuestionOptions) != 0 {
			return errors.New("true_false: options must be empty")
		}
		c := strings.ToLower(strings.TrimSpace(m.QuestionCorrectAnswer))
		if c != "true" && c != "false" {
			return errors.New("true_false: correct answer must be 'true' or 'false'")
		}
	case QuestionTypeShortAnswer, QuestionTypeEssay:
		if len(m.QuestionOptions) != 0 {
			return errors.New("subjective question: options must be empty")
		}
		if strings.TrimSpace(m.QuestionCorrectAnswer) == "" {
			return errors.New("subjective question: a model answer is required")
		}
	default:
		return errors.New("unknown question type")
	}
	return nil
}

func inSet(v string, set ...string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}
