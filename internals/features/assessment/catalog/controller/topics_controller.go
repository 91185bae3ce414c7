// file: internals/features/assessment/catalog/controller/topics_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/assessment/catalog/dto"
	model "schoolhub_backend/internals/features/assessment/catalog/model"
	helper "schoolhub_backend/internals/helpers"
)

type TopicsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewTopicsController(db *gorm.DB) *TopicsController {
	return &TopicsController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /topics
func (ctrl *TopicsController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var body dto.CreateTopicRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := body.ToModel(tenantID)
	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create topic")
	}
	return helper.JsonCreated(c, "Topic created", dto.FromTopicModel(m))
}

// GET /topics?subject=&grade_level=&q=&page=&per_page=
func (ctrl *TopicsController) List(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 25, 200)

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TopicModel{}).
		Where("topic_tenant_id = ?", tenantID)

	if subject := strings.TrimSpace(c.Query("subject")); subject != "" {
		tx = tx.Where("topic_subject = ?", subject)
	}
	if grade := c.QueryInt("grade_level", 0); grade > 0 {
		tx = tx.Where("topic_grade_level = ?", grade)
	}
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		tx = tx.Where("LOWER(topic_name) LIKE ?", like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count topics")
	}

	var items []model.TopicModel
	if err := tx.Order("topic_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list topics")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	p.Count = len(items)
	return helper.JsonList(c, "Topics fetched", dto.FromTopicModels(items), &p)
}

// PATCH /topics/:id
func (ctrl *TopicsController) Patch(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	var body dto.PatchTopicRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m model.TopicModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&m, "topic_id = ? AND topic_tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Topic not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load topic")
	}

	body.Apply(&m)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update topic")
	}
	return helper.JsonUpdated(c, "Topic updated", dto.FromTopicModel(&m))
}

// DELETE /topics/:id (soft delete)
func (ctrl *TopicsController) Delete(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("topic_id = ? AND topic_tenant_id = ?", id, tenantID).
		Delete(&model.TopicModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete topic")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Topic not found")
	}
	return helper.JsonDeleted(c, "Topic deleted", fiber.Map{"topic_id": id})
}
