package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attemptcontroller "schoolhub_backend/internals/features/assessment/attempts/controller"
)

// AttemptStudentRoutes mounts the take-a-quiz lifecycle (prefix: /api/u).
// student_id always comes from the token, never from the payload.
func AttemptStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attemptcontroller.NewAttemptsController(db)
	attempts := r.Group("/attempts")

	attempts.Post("/", ctrl.Start)                 // POST /api/u/attempts
	attempts.Get("/results", ctrl.MyResults)       // GET  /api/u/attempts/results
	attempts.Post("/:id/answers", ctrl.SubmitAnswer) // POST /api/u/attempts/:id/answers
	attempts.Post("/:id/submit", ctrl.Finalize)    // POST /api/u/attempts/:id/submit
}

// AttemptTeacherRoutes mounts review and manual grading (prefix: /api/t).
func AttemptTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := attemptcontroller.NewAttemptsController(db)
	attempts := r.Group("/attempts")

	attempts.Get("/:id", ctrl.GetDetail)        // GET  /api/t/attempts/:id
	attempts.Post("/:id/grade", ctrl.GradeAnswer) // POST /api/t/attempts/:id/grade
}
