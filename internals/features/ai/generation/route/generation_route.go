package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	generationcontroller "schoolhub_backend/internals/features/ai/generation/controller"
	gateway "schoolhub_backend/internals/features/ai/gateway"
)

// AIGenerationRoutes mounts the AI-backed teacher surface (prefix: /api/t).
// The per-route AI rate limiter is applied by the caller.
func AIGenerationRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := generationcontroller.NewGenerationController(db, gateway.NewClientFromEnv())

	r.Post("/generate-questions", ctrl.GenerateQuestions)  // POST /api/t/generate-questions
	r.Post("/grade-subjective", ctrl.GradeSubjective)      // POST /api/t/grade-subjective
	r.Post("/attempts/:id/ai-grade", ctrl.AIGradeAttempt)  // POST /api/t/attempts/:id/ai-grade
	r.Get("/ai/health", ctrl.Health)                       // GET  /api/t/ai/health
}
