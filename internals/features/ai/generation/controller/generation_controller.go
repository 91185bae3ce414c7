// file: internals/features/ai/generation/controller/generation_controller.go
package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	attemptmodel "schoolhub_backend/internals/features/assessment/attempts/model"
	attemptservice "schoolhub_backend/internals/features/assessment/attempts/service"
	catalogmodel "schoolhub_backend/internals/features/assessment/catalog/model"
	dto "schoolhub_backend/internals/features/ai/generation/dto"
	gateway "schoolhub_backend/internals/features/ai/gateway"
	helper "schoolhub_backend/internals/helpers"
)

type GenerationController struct {
	DB        *gorm.DB
	Gateway   *gateway.Client
	Attempts  *attemptservice.Service
	Validator *validator.Validate
}

func NewGenerationController(db *gorm.DB, gw *gateway.Client) *GenerationController {
	return &GenerationController{
		DB:        db,
		Gateway:   gw,
		Attempts:  attemptservice.NewService(db),
		Validator: validator.New(),
	}
}

// POST /generate-questions
func (ctrl *GenerationController) GenerateQuestions(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var body dto.GenerateQuestionsRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var topic catalogmodel.TopicModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&topic, "topic_id = ? AND topic_tenant_id = ?", body.TopicID, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Topic not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load topic")
	}

	res := ctrl.Gateway.GenerateQuestions(c.UserContext(), gateway.GenerateQuestionsRequest{
		TopicName:  topic.TopicName,
		Subject:    topic.TopicSubject,
		GradeLevel: topic.TopicGradeLevel,
		Count:      body.Count,
		Difficulty: body.Difficulty,
		Types:      body.Types,
	})

	out := dto.GenerateQuestionsResponse{
		Source:    res.Source,
		Questions: res.Questions,
	}

	if body.Persist {
		ids, err := ctrl.persistDrafts(c, tenantID, topic.TopicID, res)
		if err != nil {
			log.Printf("[AI] persist of generated questions failed: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store generated questions")
		}
		out.Persisted = len(ids)
		out.PersistedIDs = ids
	}
	return helper.JsonOK(c, "Questions generated", out)
}

// persistDrafts stores drafts as catalog questions under the topic. Drafts
// that fail shape validation are skipped rather than aborting the batch.
func (ctrl *GenerationController) persistDrafts(c *fiber.Ctx, tenantID, topicID uuid.UUID, res gateway.GenerateQuestionsResult) ([]uuid.UUID, error) {
	source := catalogmodel.QuestionSourceAI
	if res.Source == gateway.SourceFallback {
		source = catalogmodel.QuestionSourceAIFallback
	}

	ids := make([]uuid.UUID, 0, len(res.Questions))
	err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		for _, d := range res.Questions {
			m := &catalogmodel.QuestionModel{
				QuestionID:            uuid.New(),
				QuestionTenantID:      tenantID,
				QuestionTopicID:       topicID,
				QuestionText:          strings.TrimSpace(d.QuestionText),
				QuestionType:          catalogmodel.QuestionType(d.QuestionType),
				QuestionDifficulty:    catalogmodel.DifficultyLevel(d.Difficulty),
				QuestionCorrectAnswer: strings.TrimSpace(d.CorrectAnswer),
				QuestionPoints:        d.Points,
				QuestionSource:        source,
			}
			if d.Explanation != "" {
				expl := d.Explanation
				m.QuestionExplanation = &expl
			}
			if m.QuestionType == catalogmodel.QuestionTypeMultipleChoice {
				if err := m.SetOptions(d.Options, d.CorrectAnswer); err != nil {
					log.Printf("[AI] skipping draft with bad options: %v", err)
					continue
				}
			}
			if err := m.ValidateShape(); err != nil {
				log.Printf("[AI] skipping draft with bad shape: %v", err)
				continue
			}
			if err := tx.Create(m).Error; err != nil {
				return err
			}
			ids = append(ids, m.QuestionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// POST /grade-subjective: ad-hoc grading, nothing persisted.
func (ctrl *GenerationController) GradeSubjective(c *fiber.Ctx) error {
	var body dto.GradeSubjectiveRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	res := ctrl.Gateway.GradeSubjective(c.UserContext(), gateway.GradeSubjectiveRequest{
		QuestionText:  body.QuestionText,
		ModelAnswer:   body.ModelAnswer,
		StudentAnswer: body.StudentAnswer,
		MaxPoints:     body.MaxPoints,
	})
	return helper.JsonOK(c, "Answer graded", res)
}

// POST /attempts/:id/ai-grade: grade every pending subjective answer of an
// attempt; scores land through the attempts service so caps and recompute
// rules apply.
func (ctrl *GenerationController) AIGradeAttempt(c *fiber.Ctx) error {
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

	pending, err := ctrl.Attempts.PendingSubjectiveAnswers(c.UserContext(), tenantID, attemptID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load pending answers")
	}

	out := dto.AIGradeAttemptResponse{AttemptID: attemptID}
	for _, ans := range pending {
		var question catalogmodel.QuestionModel
		if err := ctrl.DB.WithContext(c.UserContext()).Unscoped().
			First(&question, "question_id = ?", ans.AnswerQuestionID).Error; err != nil {
			out.SkippedCount++
			continue
		}

		res := ctrl.Gateway.GradeSubjective(c.UserContext(), gateway.GradeSubjectiveRequest{
			QuestionText:  question.QuestionText,
			ModelAnswer:   question.QuestionCorrectAnswer,
			StudentAnswer: ans.AnswerStudentAnswer,
			MaxPoints:     question.QuestionPoints,
		})
		if res.PendingManualReview {
			out.PendingCount++
			continue
		}

		feedback := res.Feedback
		if _, err := ctrl.Attempts.GradeAnswer(c.UserContext(), tenantID, attemptID,
			attemptservice.GradeInput{
				QuestionID:   ans.AnswerQuestionID,
				PointsEarned: res.PointsEarned,
				Feedback:     &feedback,
				Status:       attemptmodel.GradingStatusAIGraded,
			}); err != nil {
			log.Printf("[AI] failed to apply grade for answer %s: %v", ans.AnswerID, err)
			out.SkippedCount++
			continue
		}
		out.GradedCount++
	}
	return helper.JsonOK(c, "Attempt graded", out)
}

// GET /ai/health
func (ctrl *GenerationController) Health(c *fiber.Ctx) error {
	res := dto.AIHealthResponse{Configured: ctrl.Gateway.Configured()}
	if res.Configured {
		res.Model = ctrl.Gateway.Model()
	}
	return helper.JsonOK(c, "AI gateway status", res)
}
