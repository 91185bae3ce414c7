// file: internals/features/tenants/dto/tenant_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolhub_backend/internals/features/tenants/model"
)

type CreateTenantRequest struct {
	TenantName         string  `json:"tenant_name" validate:"required,max=150"`
	TenantSlug         string  `json:"tenant_slug" validate:"required,max=100,lowercase"`
	TenantContactEmail *string `json:"tenant_contact_email" validate:"omitempty,email"`
}

func (r *CreateTenantRequest) ToModel() *model.TenantModel {
	var email *string
	if r.TenantContactEmail != nil {
		v := strings.TrimSpace(*r.TenantContactEmail)
		if v != "" {
			email = &v
		}
	}
	return &model.TenantModel{
		TenantID:           uuid.New(),
		TenantName:         strings.TrimSpace(r.TenantName),
		TenantSlug:         strings.TrimSpace(strings.ToLower(r.TenantSlug)),
		TenantContactEmail: email,
		TenantIsActive:     true,
	}
}

type TenantResponse struct {
	TenantID           uuid.UUID `json:"tenant_id"`
	TenantName         string    `json:"tenant_name"`
	TenantSlug         string    `json:"tenant_slug"`
	TenantContactEmail *string   `json:"tenant_contact_email,omitempty"`
	TenantIsActive     bool      `json:"tenant_is_active"`
	TenantCreatedAt    time.Time `json:"tenant_created_at"`
}

func FromTenantModel(m *model.TenantModel) TenantResponse {
	return TenantResponse{
		TenantID:           m.TenantID,
		TenantName:         m.TenantName,
		TenantSlug:         m.TenantSlug,
		TenantContactEmail: m.TenantContactEmail,
		TenantIsActive:     m.TenantIsActive,
		TenantCreatedAt:    m.TenantCreatedAt,
	}
}

func FromTenantModels(items []model.TenantModel) []TenantResponse {
	out := make([]TenantResponse, 0, len(items))
	for i := range items {
		out = append(out, FromTenantModel(&items[i]))
	}
	return out
}
