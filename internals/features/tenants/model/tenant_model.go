package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantModel is the registry row every tenant-scoped table points at.
type TenantModel struct {
	TenantID           uuid.UUID      `gorm:"column:tenant_id;type:uuid;primaryKey" json:"tenant_id"`
	TenantName         string         `gorm:"column:tenant_name;type:varchar(150);not null" json:"tenant_name"`
	TenantSlug         string         `gorm:"column:tenant_slug;type:varchar(100);not null;uniqueIndex" json:"tenant_slug"`
	TenantContactEmail *string        `gorm:"column:tenant_contact_email;type:varchar(150)" json:"tenant_contact_email,omitempty"`
	TenantIsActive     bool           `gorm:"column:tenant_is_active;not null;default:true" json:"tenant_is_active"`
	TenantCreatedAt    time.Time      `gorm:"column:tenant_created_at;not null;autoCreateTime" json:"tenant_created_at"`
	TenantUpdatedAt    time.Time      `gorm:"column:tenant_updated_at;not null;autoUpdateTime" json:"tenant_updated_at"`
	TenantDeletedAt    gorm.DeletedAt `gorm:"column:tenant_deleted_at;index" json:"tenant_deleted_at,omitempty"`
}

func (TenantModel) TableName() string { return "tenants" }
