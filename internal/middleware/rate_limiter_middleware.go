package middleware

import (
	"time"

	"employee-portal/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// LoginRateLimiter allows max login attempts per minute per client IP.
func LoginRateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"kind":    apperror.KindUnauthorized,
				"code":    "too_many_attempts",
				"message": "too many login attempts, try again later",
			})
		},
	})
}
