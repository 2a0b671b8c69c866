package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	helperAuth "sekolahku_backend/internals/helpers/auth"
)

// OnlyRoles: tolak 403 kalau role token tidak termasuk roles.
func OnlyRoles(customMessage string, roles ...constants.Role) fiber.Handler {
	if customMessage == "" {
		customMessage = "Forbidden: you are not authorized to access this resource"
	}
	return func(c *fiber.Ctx) error {
		if helperAuth.HasRole(c, roles...) {
			return c.Next()
		}
		return fiber.NewError(fiber.StatusForbidden, customMessage)
	}
}

// IsSuperAdmin: guard group /api/a
func IsSuperAdmin() fiber.Handler {
	return OnlyRoles(constants.RoleErrorAdmin("admin"), constants.AdminOnly...)
}
