package middleware

import (
	"employee-portal/internal/apperror"
	"employee-portal/internal/model"

	"github.com/gofiber/fiber/v2"
)

var errRoleDenied = apperror.Forbidden("role_denied", "you do not have access to this resource")

// Role only lets through callers whose role is in allowedRoles. It must run after Auth.
func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := CurrentIdentity(c)
		if !ok {
			return errMissingToken
		}

		for _, role := range allowedRoles {
			if role == id.Role {
				return c.Next()
			}
		}
		return errRoleDenied
	}
}
