// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	details "schoolhub_backend/internals/route/details"
)

// SetupRoutes mounts the three API surfaces:
//
//	/api/a: platform admin (tenant registry; no tenant context)
//	/api/t: teacher/admin, tenant-scoped
//	/api/u: student, tenant-scoped
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	details.AdminRoutes(api, db)
	details.TeacherRoutes(api, db)
	details.StudentRoutes(api, db)
}
