// internals/middlewares/tenant/tenant_middleware.go
package tenant

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	tenantModel "schoolhub_backend/internals/features/tenants/model"
	helper "schoolhub_backend/internals/helpers"
)

// TenantMiddleware resolves the tenant from the X-Tenant-ID header (or the
// tenant_id query param), verifies the registry row, and stores the id in
// Locals. Every tenant-scoped handler sits behind this.
func TenantMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get("X-Tenant-ID"))
		if raw == "" {
			raw = strings.TrimSpace(c.Query("tenant_id"))
		}
		if raw == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tenant context missing (X-Tenant-ID header or tenant_id query required)")
		}

		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tenant id is not a valid UUID")
		}

		var t tenantModel.TenantModel
		if err := db.WithContext(c.UserContext()).
			First(&t, "tenant_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Tenant not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve tenant")
		}
		if !t.TenantIsActive {
			return helper.JsonError(c, fiber.StatusForbidden, "Tenant is inactive")
		}

		c.Locals(helper.LocalsTenantID, t.TenantID.String())
		return c.Next()
	}
}
