// file: internals/features/assessment/catalog/controller/questions_controller.go
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

type QuestionsController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewQuestionsController(db *gorm.DB) *QuestionsController {
	return &QuestionsController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /questions
func (ctrl *QuestionsController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var body dto.CreateQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// topic must exist in this tenant (soft-deleted topics don't count)
	var topicCount int64
	if err := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.TopicModel{}).
		Where("topic_id = ? AND topic_tenant_id = ?", body.QuestionTopicID, tenantID).
		Count(&topicCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check topic")
	}
	if topicCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Topic not found")
	}

	m, err := body.ToModel(tenantID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := m.ValidateShape(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create question")
	}
	return helper.JsonCreated(c, "Question created", dto.FromQuestionModel(m))
}

// GET /topics/:topic_id/questions?type=&difficulty=&page=&per_page=
func (ctrl *QuestionsController) ListByTopic(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	topicID, err := uuid.Parse(c.Params("topic_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topic id")
	}

	paging := helper.ResolvePaging(c, 25, 200)

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.QuestionModel{}).
		Where("question_tenant_id = ? AND question_topic_id = ?", tenantID, topicID)

	if qt := strings.TrimSpace(c.Query("type")); qt != "" {
		tx = tx.Where("question_type = ?", qt)
	}
	if diff := strings.TrimSpace(c.Query("difficulty")); diff != "" {
		tx = tx.Where("question_difficulty = ?", diff)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count questions")
	}

	var items []model.QuestionModel
	if err := tx.Order("question_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list questions")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	p.Count = len(items)
	return helper.JsonList(c, "Questions fetched", dto.FromQuestionModels(items), &p)
}

// GET /questions/:id
func (ctrl *QuestionsController) GetByID(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var m model.QuestionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&m, "question_id = ? AND question_tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load question")
	}
	return helper.JsonOK(c, "Question fetched", dto.FromQuestionModel(&m))
}

// PATCH /questions/:id
func (ctrl *QuestionsController) Patch(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	var body dto.PatchQuestionRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m model.QuestionModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&m, "question_id = ? AND question_tenant_id = ?", id, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load question")
	}

	if err := body.Apply(&m); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update question")
	}
	return helper.JsonUpdated(c, "Question updated", dto.FromQuestionModel(&m))
}

// DELETE /questions/:id (soft delete: stays resolvable for historical attempts)
func (ctrl *QuestionsController) Delete(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid question id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Where("question_id = ? AND question_tenant_id = ?", id, tenantID).
		Delete(&model.QuestionModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete question")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Question not found")
	}
	return helper.JsonDeleted(c, "Question deleted", fiber.Map{"question_id": id})
}
