package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gateway "schoolhub_backend/internals/features/ai/gateway"
	analyticscontroller "schoolhub_backend/internals/features/analytics/controller"
)

// AnalyticsTeacherRoutes mounts class/quiz reporting (prefix: /api/t).
func AnalyticsTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := analyticscontroller.NewAnalyticsController(db, gateway.NewClientFromEnv())
	analytics := r.Group("/analytics")

	analytics.Get("/quizzes/:id", ctrl.QuizPerformance) // GET /api/t/analytics/quizzes/:id
	analytics.Get("/students/:id", ctrl.StudentReport)  // GET /api/t/analytics/students/:id
}

// AnalyticsStudentRoutes mounts the self-report (prefix: /api/u).
func AnalyticsStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := analyticscontroller.NewAnalyticsController(db, gateway.NewClientFromEnv())
	analytics := r.Group("/analytics")

	analytics.Get("/me", ctrl.MyReport) // GET /api/u/analytics/me
}
