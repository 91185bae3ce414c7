// file: internals/route/details/admin_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tenantroute "schoolhub_backend/internals/features/tenants/route"
	authmw "schoolhub_backend/internals/middlewares/auth"
)

// AdminRoutes: /api/a: tenant registry management. Runs without the tenant
// middleware since these endpoints administer the tenants themselves.
func AdminRoutes(api fiber.Router, db *gorm.DB) {
	admin := api.Group("/a",
		authmw.AuthMiddleware(),
		authmw.RequireAdmin("tenant administration"),
	)

	tenantroute.TenantAdminRoutes(admin, db)
}
