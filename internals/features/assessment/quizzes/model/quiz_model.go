// file: internals/features/assessment/quizzes/model/quiz_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizModel struct {
	QuizID       uuid.UUID  `gorm:"column:quiz_id;type:uuid;primaryKey" json:"quiz_id"`
	QuizTenantID uuid.UUID  `gorm:"column:quiz_tenant_id;type:uuid;not null;index" json:"quiz_tenant_id"`
	QuizTopicID  uuid.UUID  `gorm:"column:quiz_topic_id;type:uuid;not null;index" json:"quiz_topic_id"`
	QuizClassID  *uuid.UUID `gorm:"column:quiz_class_id;type:uuid;index" json:"quiz_class_id,omitempty"`
	QuizTeacherID uuid.UUID `gorm:"column:quiz_teacher_id;type:uuid;not null;index" json:"quiz_teacher_id"`

	QuizTitle        string  `gorm:"column:quiz_title;type:varchar(200);not null" json:"quiz_title"`
	QuizDescription  *string `gorm:"column:quiz_description;type:text" json:"quiz_description,omitempty"`
	QuizInstructions *string `gorm:"column:quiz_instructions;type:text" json:"quiz_instructions,omitempty"`

	QuizTotalQuestions int     `gorm:"column:quiz_total_questions;not null;default:0" json:"quiz_total_questions"`
	QuizTotalPoints    float64 `gorm:"column:quiz_total_points;type:numeric(8,2);not null;default:0" json:"quiz_total_points"`
	QuizTimeLimitMin   *int    `gorm:"column:quiz_time_limit_min" json:"quiz_time_limit_min,omitempty"`

	QuizStartTime *time.Time `gorm:"column:quiz_start_time" json:"quiz_start_time,omitempty"`
	QuizEndTime   *time.Time `gorm:"column:quiz_end_time" json:"quiz_end_time,omitempty"`

	QuizIsActive                bool `gorm:"column:quiz_is_active;not null;default:true" json:"quiz_is_active"`
	QuizAllowRetakes            bool `gorm:"column:quiz_allow_retakes;not null;default:false" json:"quiz_allow_retakes"`
	QuizShowResultsImmediately  bool `gorm:"column:quiz_show_results_immediately;not null;default:true" json:"quiz_show_results_immediately"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;not null;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`
}

func (QuizModel) TableName() string { return "quizzes" }

// OpenAt reports whether the quiz accepts new attempts at t.
func (m *QuizModel) OpenAt(t time.Time) bool {
	if !m.QuizIsActive {
		return false
	}
	if m.QuizStartTime != nil && t.Before(*m.QuizStartTime) {
		return false
	}
	if m.QuizEndTime != nil && t.After(*m.QuizEndTime) {
		return false
	}
	return true
}
