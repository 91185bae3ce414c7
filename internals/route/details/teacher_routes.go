// file: internals/route/details/teacher_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	generationroute "schoolhub_backend/internals/features/ai/generation/route"
	analyticsroute "schoolhub_backend/internals/features/analytics/route"
	attemptroute "schoolhub_backend/internals/features/assessment/attempts/route"
	catalogroute "schoolhub_backend/internals/features/assessment/catalog/route"
	quizroute "schoolhub_backend/internals/features/assessment/quizzes/route"
	middlewares "schoolhub_backend/internals/middlewares"
	authmw "schoolhub_backend/internals/middlewares/auth"
	tenantmw "schoolhub_backend/internals/middlewares/tenant"
)

// TeacherRoutes: /api/t: tenant-scoped question bank, quiz assembly,
// grading, analytics and the AI surface.
func TeacherRoutes(api fiber.Router, db *gorm.DB) {
	teacher := api.Group("/t",
		authmw.AuthMiddleware(),
		tenantmw.TenantMiddleware(db),
		authmw.RequireTeacher("teaching tools"),
	)

	catalogroute.CatalogTeacherRoutes(teacher, db)
	quizroute.QuizTeacherRoutes(teacher, db)
	attemptroute.AttemptTeacherRoutes(teacher, db)
	analyticsroute.AnalyticsTeacherRoutes(teacher, db)

	// AI endpoints sit behind the tighter limiter and a wider context
	// deadline; outbound calls are slow and metered.
	ai := teacher.Group("/", middlewares.AIRateLimiter(), middlewares.AITimeout())
	generationroute.AIGenerationRoutes(ai, db)
}
