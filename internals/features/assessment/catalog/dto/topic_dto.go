// file: internals/features/assessment/catalog/dto/topic_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolhub_backend/internals/features/assessment/catalog/model"
)

/* ==============================
   Helpers
============================== */

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* ==============================
   CREATE (POST /topics)
============================== */

type CreateTopicRequest struct {
	TopicName        string  `json:"topic_name" validate:"required,max=100"`
	TopicDescription *string `json:"topic_description" validate:"omitempty"`
	TopicSubject     string  `json:"topic_subject" validate:"required,max=50"`
	TopicGradeLevel  int     `json:"topic_grade_level" validate:"required,gte=1,lte=12"`
}

func (r *CreateTopicRequest) ToModel(tenantID uuid.UUID) *model.TopicModel {
	return &model.TopicModel{
		TopicID:          uuid.New(),
		TopicTenantID:    tenantID,
		TopicName:        strings.TrimSpace(r.TopicName),
		TopicDescription: trimPtr(r.TopicDescription),
		TopicSubject:     strings.TrimSpace(r.TopicSubject),
		TopicGradeLevel:  r.TopicGradeLevel,
	}
}

/* ==============================
   PATCH (PATCH /topics/:id)
============================== */

type PatchTopicRequest struct {
	TopicName        *string `json:"topic_name" validate:"omitempty,max=100"`
	TopicDescription *string `json:"topic_description" validate:"omitempty"`
	TopicSubject     *string `json:"topic_subject" validate:"omitempty,max=50"`
	TopicGradeLevel  *int    `json:"topic_grade_level" validate:"omitempty,gte=1,lte=12"`
}

func (r *PatchTopicRequest) Apply(m *model.TopicModel) {
	if r.TopicName != nil {
		m.TopicName = strings.TrimSpace(*r.TopicName)
	}
	if r.TopicDescription != nil {
		m.TopicDescription = trimPtr(r.TopicDescription)
	}
	if r.TopicSubject != nil {
		m.TopicSubject = strings.TrimSpace(*r.TopicSubject)
	}
	if r.TopicGradeLevel != nil {
		m.TopicGradeLevel = *r.TopicGradeLevel
	}
}

/* ==============================
   RESPONSE
============================== */

type TopicResponse struct {
	TopicID          uuid.UUID `json:"topic_id"`
	TopicName        string    `json:"topic_name"`
	TopicDescription *string   `json:"topic_description,omitempty"`
	TopicSubject     string    `json:"topic_subject"`
	TopicGradeLevel  int       `json:"topic_grade_level"`
	TopicCreatedAt   time.Time `json:"topic_created_at"`
}

func FromTopicModel(m *model.TopicModel) TopicResponse {
	return TopicResponse{
		TopicID:          m.TopicID,
		TopicName:        m.TopicName,
		TopicDescription: m.TopicDescription,
		TopicSubject:     m.TopicSubject,
		TopicGradeLevel:  m.TopicGradeLevel,
		TopicCreatedAt:   m.TopicCreatedAt,
	}
}

func FromTopicModels(items []model.TopicModel) []TopicResponse {
	out := make([]TopicResponse, 0, len(items))
	for i := range items {
		out = append(out, FromTopicModel(&items[i]))
	}
	return out
}
