// file: internals/features/analytics/controller/analytics_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	gateway "schoolhub_backend/internals/features/ai/gateway"
	analyticsservice "schoolhub_backend/internals/features/analytics/service"
	helper "schoolhub_backend/internals/helpers"
)

type AnalyticsController struct {
	Service *analyticsservice.Service
}

func NewAnalyticsController(db *gorm.DB, gw *gateway.Client) *AnalyticsController {
	return &AnalyticsController{
		Service: analyticsservice.NewService(db, gw),
	}
}

// GET /analytics/quizzes/:id
func (ctrl *AnalyticsController) QuizPerformance(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	quizID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid quiz id")
	}

	res, err := ctrl.Service.QuizPerformance(c.UserContext(), tenantID, quizID)
	if err != nil {
		if errors.Is(err, analyticsservice.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		log.Printf("[ANALYTICS] quiz performance failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
	return helper.JsonOK(c, "Quiz performance fetched", res)
}

// GET /analytics/students/:id: teacher view over any student.
func (ctrl *AnalyticsController) StudentReport(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	res, err := ctrl.Service.StudentReport(c.UserContext(), tenantID, studentID)
	if err != nil {
		log.Printf("[ANALYTICS] student report failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
	return helper.JsonOK(c, "Student report fetched", res)
}

// GET /analytics/me: the student's own report.
func (ctrl *AnalyticsController) MyReport(c *fiber.Ctx) error {
	tenantID, err := helper.TenantIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	studentID, err := helper.UserIDFromCtx(c)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	res, err := ctrl.Service.StudentReport(c.UserContext(), tenantID, studentID)
	if err != nil {
		log.Printf("[ANALYTICS] student report failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal error")
	}
	return helper.JsonOK(c, "Report fetched", res)
}
