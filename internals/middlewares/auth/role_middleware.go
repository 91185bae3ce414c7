package auth

import (
	"github.com/gofiber/fiber/v2"

	"schoolhub_backend/internals/constants"
	helper "schoolhub_backend/internals/helpers"
)

// requireRoles guards a route group to the given roles; denial uses the
// supplied message.
func requireRoles(message string, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := helper.RoleFromCtx(c)
		if _, ok := allowed[role]; !ok {
			return helper.JsonError(c, fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

func RequireTeacher(feature string) fiber.Handler {
	return requireRoles(constants.RoleErrorTeacher(feature), constants.StaffRoles...)
}

func RequireAdmin(feature string) fiber.Handler {
	return requireRoles(constants.RoleErrorAdmin(feature), constants.AdminOnly...)
}

func RequireStudent(feature string) fiber.Handler {
	return requireRoles(constants.RoleErrorStudent(feature), constants.StudentRoles...)
}
