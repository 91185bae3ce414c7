// file: internals/features/assessment/attempts/model/attempt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type AttemptStatus string

const (
	AttemptStatusInProgress AttemptStatus = "in_progress"
	AttemptStatusSubmitted  AttemptStatus = "submitted"
	AttemptStatusAbandoned  AttemptStatus = "abandoned"
)

type AttemptModel struct {
	AttemptID        uuid.UUID `gorm:"column:attempt_id;type:uuid;primaryKey" json:"attempt_id"`
	AttemptTenantID  uuid.UUID `gorm:"column:attempt_tenant_id;type:uuid;not null;index" json:"attempt_tenant_id"`
	AttemptQuizID    uuid.UUID `gorm:"column:attempt_quiz_id;type:uuid;not null;index:idx_attempt_quiz_student;uniqueIndex:uq_attempt_quiz_student_number" json:"attempt_quiz_id"`
	AttemptStudentID uuid.UUID `gorm:"column:attempt_student_id;type:uuid;not null;index:idx_attempt_quiz_student;uniqueIndex:uq_attempt_quiz_student_number" json:"attempt_student_id"`

	// unique (quiz, student, number) backstops the counted attempt_number
	// against concurrent starts
	AttemptNumber int           `gorm:"column:attempt_number;not null;default:1;uniqueIndex:uq_attempt_quiz_student_number" json:"attempt_number"`
	AttemptStatus AttemptStatus `gorm:"column:attempt_status;type:varchar(16);not null;default:'in_progress'" json:"attempt_status"`

	AttemptStartedAt  time.Time  `gorm:"column:attempt_started_at;not null" json:"attempt_started_at"`
	AttemptFinishedAt *time.Time `gorm:"column:attempt_finished_at" json:"attempt_finished_at,omitempty"`

	AttemptTotalScore float64 `gorm:"column:attempt_total_score;type:numeric(8,2);not null;default:0" json:"attempt_total_score"`
	AttemptMaxScore   float64 `gorm:"column:attempt_max_score;type:numeric(8,2);not null;default:0" json:"attempt_max_score"`
	AttemptPercentage float64 `gorm:"column:attempt_percentage;type:numeric(5,2);not null;default:0" json:"attempt_percentage"`

	AttemptCreatedAt time.Time `gorm:"column:attempt_created_at;not null;autoCreateTime" json:"attempt_created_at"`
	AttemptUpdatedAt time.Time `gorm:"column:attempt_updated_at;not null;autoUpdateTime" json:"attempt_updated_at"`
}

func (AttemptModel) TableName() string { return "quiz_attempts" }
