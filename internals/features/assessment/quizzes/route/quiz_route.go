package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	quizcontroller "schoolhub_backend/internals/features/assessment/quizzes/controller"
)

// QuizTeacherRoutes mounts the assembly/management surface (prefix: /api/t).
func QuizTeacherRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizcontroller.NewQuizzesController(db)
	quizzes := r.Group("/quizzes")

	quizzes.Post("/", ctrl.Create)                  // POST  /api/t/quizzes
	quizzes.Post("/suggest", ctrl.Suggest)          // POST  /api/t/quizzes/suggest
	quizzes.Get("/", ctrl.List)                     // GET   /api/t/quizzes
	quizzes.Get("/:id", ctrl.GetByID)               // GET   /api/t/quizzes/:id
	quizzes.Patch("/:id/deactivate", ctrl.Deactivate) // PATCH /api/t/quizzes/:id/deactivate
}

// QuizStudentRoutes mounts the answer-stripped student view (prefix: /api/u).
func QuizStudentRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := quizcontroller.NewQuizzesController(db)
	quizzes := r.Group("/quizzes")

	quizzes.Get("/:id/student", ctrl.GetForStudent) // GET /api/u/quizzes/:id/student
}
