package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// GetUserFromContext returns the caller set by Jwt.
func GetUserFromContext(c *fiber.Ctx) (string, bool) {
	if userID := c.Locals(ContextKeyUserID); userID != nil {
		if id, ok := userID.(string); ok && id != "" {
			return id, true
		}
	}
	return "", false
}
