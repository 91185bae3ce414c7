// file: internals/features/assessment/quizzes/controller/quizzes_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/assessment/quizzes/dto"
	model "schoolhub_backend/internals/features/assessment/quizzes/model"
	quizservice "schoolhub_backend/internals/features/assessment/quizzes/service"
	helper "schoolhub_backend/internals/helpers"
)

type QuizzesController struct {
	DB        *gorm.DB
	Service   *quizservice.Service
	Validator *validator.Validate
}

func NewQuizzesController(db *gorm.DB) *QuizzesController {
	return &QuizzesController{
		DB:        db,
		Service:   quizservice.NewService(db),
		Validator: validator.New(),
	}
}

func (ctrl *QuizzesController) mapServiceErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, quizservice.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	case errors.Is(err, quizservice.ErrValidation):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("[QUIZZES] service error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
}

// POST /quizzes
func (ctrl *QuizzesController) Create(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	teacherID, err := helper.UserIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var body dto.CreateQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	quiz, err := ctrl.Service.Create(c.UserContext(), tenantID, body.ToInput(teacherID))
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.JsonCreated(c, "Quiz created", dto.FromQuizModel(quiz))
}

// GET /quizzes?topic_id=&active=&page=&per_page=
func (ctrl *QuizzesController) List(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	paging := helper.ResolvePaging(c, 25, 200)

	tx := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.QuizModel{}).
		Where("quiz_tenant_id = ?", tenantID)

	if raw := c.Query("topic_id"); raw != "" {
		topicID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid topic_id")
		}
		tx = tx.Where("quiz_topic_id = ?", topicID)
	}
	if c.Query("active") == "true" {
		tx = tx.Where("quiz_is_active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count quizzes")
	}

	var items []model.QuizModel
	if err := tx.Order("quiz_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list quizzes")
	}

	p := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	p.Count = len(items)
	return helper.JsonList(c, "Quizzes fetched", dto.FromQuizModels(items), &p)
}

// GET /quizzes/:id
func (ctrl *QuizzesController) GetByID(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	quiz, err := ctrl.Service.GetByID(c.UserContext(), tenantID, id)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "Quiz fetched", dto.FromQuizModel(quiz))
}

// GET /quizzes/:id/student: answer-stripped view, questions in order.
func (ctrl *QuizzesController) GetForStudent(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	quiz, err := ctrl.Service.GetByID(c.UserContext(), tenantID, id)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	ordered, err := ctrl.Service.QuestionsInOrder(c.UserContext(), quiz.QuizID)
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "Quiz fetched", dto.FromOrderedQuestions(quiz, ordered))
}

// POST /quizzes/suggest
func (ctrl *QuizzesController) Suggest(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var body dto.SuggestQuizRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	res, err := ctrl.Service.Suggest(c.UserContext(), tenantID, body.ToInput())
	if err != nil {
		return ctrl.mapServiceErr(c, err)
	}
	return helper.JsonOK(c, "Assembly suggested", res)
}

// PATCH /quizzes/:id/deactivate
func (ctrl *QuizzesController) Deactivate(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.QuizModel{}).
		Where("quiz_id = ? AND quiz_tenant_id = ?", id, tenantID).
		Update("quiz_is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate quiz")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
	}
	return helper.JsonUpdated(c, "Quiz deactivated", fiber.Map{"quiz_id": id})
}
