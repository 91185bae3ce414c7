package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TopicModel struct {
	TopicID          uuid.UUID      `gorm:"column:topic_id;type:uuid;primaryKey" json:"topic_id"`
	TopicTenantID    uuid.UUID      `gorm:"column:topic_tenant_id;type:uuid;not null;index" json:"topic_tenant_id"`
	TopicName        string         `gorm:"column:topic_name;type:varchar(100);not null" json:"topic_name"`
	TopicDescription *string        `gorm:"column:topic_description;type:text" json:"topic_description,omitempty"`
	TopicSubject     string         `gorm:"column:topic_subject;type:varchar(50);not null" json:"topic_subject"`
	TopicGradeLevel  int            `gorm:"column:topic_grade_level;not null" json:"topic_grade_level"`
	TopicCreatedAt   time.Time      `gorm:"column:topic_created_at;not null;autoCreateTime" json:"topic_created_at"`
	TopicUpdatedAt   time.Time      `gorm:"column:topic_updated_at;not null;autoUpdateTime" json:"topic_updated_at"`
	TopicDeletedAt   gorm.DeletedAt `gorm:"column:topic_deleted_at;index" json:"topic_deleted_at,omitempty"`
}

// TableName overrides the table name used by GORM.
func (TopicModel) TableName() string {
	return "topics"
}
