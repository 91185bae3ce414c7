package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	catalogcontroller "schoolhub_backend/internals/features/assessment/catalog/controller"
)

// CatalogTeacherRoutes mounts the question-bank management surface.
// Parent router carries auth + RequireTeacher (prefix: /api/t).
func CatalogTeacherRoutes(r fiber.Router, db *gorm.DB) {
	topicCtrl := catalogcontroller.NewTopicsController(db)
	topics := r.Group("/topics")

	topics.Post("/", topicCtrl.Create)      // POST   /api/t/topics
	topics.Get("/", topicCtrl.List)         // GET    /api/t/topics
	topics.Patch("/:id", topicCtrl.Patch)   // PATCH  /api/t/topics/:id
	topics.Delete("/:id", topicCtrl.Delete) // DELETE /api/t/topics/:id

	qCtrl := catalogcontroller.NewQuestionsController(db)
	topics.Get("/:topic_id/questions", qCtrl.ListByTopic) // GET /api/t/topics/:topic_id/questions

	questions := r.Group("/questions")
	questions.Post("/", qCtrl.Create)       // POST   /api/t/questions
	questions.Get("/:id", qCtrl.GetByID)    // GET    /api/t/questions/:id
	questions.Patch("/:id", qCtrl.Patch)    // PATCH  /api/t/questions/:id
	questions.Delete("/:id", qCtrl.Delete)  // DELETE /api/t/questions/:id
}
