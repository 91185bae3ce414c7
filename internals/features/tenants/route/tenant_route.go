package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	tenantcontroller "schoolhub_backend/internals/features/tenants/controller"
)

// TenantAdminRoutes mounts the tenant registry (prefix: /api/a). These
// endpoints run outside the tenant middleware: they manage tenants
// themselves.
func TenantAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := tenantcontroller.NewTenantsController(db)
	tenants := r.Group("/tenants")

	tenants.Post("/", ctrl.Create)          // POST /api/a/tenants
	tenants.Get("/", ctrl.List)             // GET  /api/a/tenants
	tenants.Get("/:slug", ctrl.GetBySlug)   // GET  /api/a/tenants/:slug
}
