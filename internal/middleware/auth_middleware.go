package middleware

import (
	"strings"

	"employee-portal/internal/apperror"
	"employee-portal/internal/token"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

var errMissingToken = apperror.Unauthorized("missing_token", "missing bearer token")

// TokenVerifier resolves a raw bearer token into an identity.
type TokenVerifier interface {
	Verify(raw string) (token.Identity, error)
}

// Auth verifies the bearer token and stores the caller's identity in Locals.
func Auth(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Take the token from "Authorization: Bearer <token>"
		authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		scheme, raw, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(raw) == "" {
			return errMissingToken
		}

		// 2. Verify signature and expiry
		id, err := tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			return err
		}

		// 3. Make the identity available to handlers
		c.Locals(identityKey, id)
		return c.Next()
	}
}

// CurrentIdentity returns the identity stored by Auth.
func CurrentIdentity(c *fiber.Ctx) (token.Identity, bool) {
	id, ok := c.Locals(identityKey).(token.Identity)
	return id, ok
}
