// file: internals/route/details/student_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	analyticsroute "schoolhub_backend/internals/features/analytics/route"
	attemptroute "schoolhub_backend/internals/features/assessment/attempts/route"
	quizroute "schoolhub_backend/internals/features/assessment/quizzes/route"
	authmw "schoolhub_backend/internals/middlewares/auth"
	tenantmw "schoolhub_backend/internals/middlewares/tenant"
)

// StudentRoutes: /api/u: taking quizzes and reading one's own results.
func StudentRoutes(api fiber.Router, db *gorm.DB) {
	student := api.Group("/u",
		authmw.AuthMiddleware(),
		tenantmw.TenantMiddleware(db),
		authmw.RequireStudent("quiz taking"),
	)

	quizroute.QuizStudentRoutes(student, db)
	attemptroute.AttemptStudentRoutes(student, db)
	analyticsroute.AnalyticsStudentRoutes(student, db)
}
