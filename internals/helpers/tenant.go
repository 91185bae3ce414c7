// file: internals/helpers/tenant.go
package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys written by the tenant & auth middlewares.
const (
	LocalsTenantID = "tenant_id"
	LocalsUserID   = "user_id"
	LocalsRole     = "role"
)

var (
	ErrTenantContextMissing = fiber.NewError(fiber.StatusBadRequest, "Tenant context missing (X-Tenant-ID header or tenant_id query required)")
	ErrUserContextMissing   = fiber.NewError(fiber.StatusUnauthorized, "User context missing")
)

// TenantIDFromCtx returns the tenant id resolved by the tenant middleware.
// Core operations always receive the tenant explicitly: never read it from
// ambient state deeper down the stack.
func TenantIDFromCtx(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsTenantID).(string)
	if raw == "" {
		return uuid.Nil, ErrTenantContextMissing
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrTenantContextMissing
	}
	return id, nil
}

// UserIDFromCtx returns the authenticated user id set by the auth middleware.
func UserIDFromCtx(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals(LocalsUserID).(string)
	if raw == "" {
		return uuid.Nil, ErrUserContextMissing
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, ErrUserContextMissing
	}
	return id, nil
}

func RoleFromCtx(c *fiber.Ctx) string {
	role, _ := c.Locals(LocalsRole).(string)
	return role
}
