// file: internals/features/assessment/attempts/controller/attempts_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "schoolhub_backend/internals/features/assessment/attempts/dto"
	attemptmodel "schoolhub_backend/internals/features/assessment/attempts/model"
	attemptservice "schoolhub_backend/internals/features/assessment/attempts/service"
	helper "schoolhub_backend/internals/helpers"
)

type AttemptsController struct {
	DB        *gorm.DB
	Service   *attemptservice.Service
	Validator *validator.Validate
}

func NewAttemptsController(db *gorm.DB) *AttemptsController {
	return &AttemptsController{
		DB:        db,
		Service:   attemptservice.NewService(db),
		Validator: validator.New(),
	}
}

func mapAttemptErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, attemptservice.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, attemptservice.ErrInvalidState):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, attemptservice.ErrValidation):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, attemptservice.ErrForbidden):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	default:
		log.Printf("[ATTEMPTS] service error: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
}

func ctxIdentity(c *fiber.Ctx) (tenantID, userID uuid.UUID, ferr error) {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return uuid.Nil, uuid.Nil, helper.JsonError(c, fe.Code, fe.Message)
		}
		return uuid.Nil, uuid.Nil, helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	userID, err = helper.UserIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return uuid.Nil, uuid.Nil, helper.JsonError(c, fe.Code, fe.Message)
		}
		return uuid.Nil, uuid.Nil, helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	return tenantID, userID, nil
}

// POST /attempts: student starts a quiz.
func (ctrl *AttemptsController) Start(c *fiber.Ctx) error {
	tenantID, studentID, ferr := ctxIdentity(c)
	if ferr != nil {
		return ferr
	}

	var body dto.StartAttemptRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	attempt, err := ctrl.Service.StartAttempt(c.UserContext(), tenantID, body.QuizID, studentID)
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonCreated(c, "Attempt started", dto.FromAttemptModel(attempt))
}

// POST /attempts/:id/answers: submit or overwrite one answer.
func (ctrl *AttemptsController) SubmitAnswer(c *fiber.Ctx) error {
	tenantID, studentID, ferr := ctxIdentity(c)
	if ferr != nil {
		return ferr
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var body dto.SubmitAnswerRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	answer, err := ctrl.Service.SubmitAnswer(c.UserContext(), tenantID, attemptID, studentID,
		attemptservice.SubmitAnswerInput{
			QuestionID:   body.QuestionID,
			Response:     body.Response,
			TimeTakenSec: body.TimeTakenSec,
		})
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonOK(c, "Answer recorded", dto.FromAnswerModel(answer))
}

// POST /attempts/:id/submit: finalize.
func (ctrl *AttemptsController) Finalize(c *fiber.Ctx) error {
	tenantID, studentID, ferr := ctxIdentity(c)
	if ferr != nil {
		return ferr
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	attempt, err := ctrl.Service.FinalizeAttempt(c.UserContext(), tenantID, attemptID, studentID)
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonOK(c, "Attempt submitted", dto.FromAttemptModel(attempt))
}

// GET /attempts/results: the student's own submitted attempts.
func (ctrl *AttemptsController) MyResults(c *fiber.Ctx) error {
	tenantID, studentID, ferr := ctxIdentity(c)
	if ferr != nil {
		return ferr
	}

	attempts, err := ctrl.Service.StudentResults(c.UserContext(), tenantID, studentID)
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonOK(c, "Results fetched", dto.FromAttemptModels(attempts))
}

// GET /attempts/:id: attempt detail with answers (teacher surface).
func (ctrl *AttemptsController) GetDetail(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	attempt, err := ctrl.Service.GetAttempt(c.UserContext(), tenantID, attemptID)
	if err != nil {
		return mapAttemptErr(c, err)
	}
	answers, err := ctrl.Service.AttemptAnswers(c.UserContext(), tenantID, attemptID)
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonOK(c, "Attempt fetched", dto.AttemptDetailResponse{
		Attempt: dto.FromAttemptModel(attempt),
		Answers: dto.FromAnswerModels(answers),
	})
}

// POST /attempts/:id/grade: manual grade for one subjective answer.
func (ctrl *AttemptsController) GradeAnswer(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	attemptID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid attempt id")
	}

	var body dto.GradeAnswerRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	answer, err := ctrl.Service.GradeAnswer(c.UserContext(), tenantID, attemptID,
		attemptservice.GradeInput{
			QuestionID:   body.QuestionID,
			PointsEarned: body.PointsEarned,
			Feedback:     body.Feedback,
			Status:       attemptmodel.GradingStatusManuallyGraded,
		})
	if err != nil {
		return mapAttemptErr(c, err)
	}
	return helper.JsonUpdated(c, "Answer graded", dto.FromAnswerModel(answer))
}
