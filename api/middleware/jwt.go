package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared"
)

const (
	ContextKeyToken  = "auth"
	ContextKeyUserID = "user_id"
)

// Jwt verifies HS256 bearer tokens and stores the caller in the request locals.
func Jwt(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:    []byte(secret),
		SigningMethod: "HS256",
		TokenLookup:   "header:Authorization",
		AuthScheme:    "Bearer",
		ContextKey:    ContextKeyToken,
		Claims:        new(shared.UserClaims),
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(ContextKeyToken).(*jwt.Token)
			if !ok {
				return response.SendUnauthorized(c, "Invalid token")
			}
			claims, ok := token.Claims.(*shared.UserClaims)
			if !ok || claims.Subject() == "" {
				return response.SendUnauthorized(c, "Token has no subject")
			}
			c.Locals(ContextKeyUserID, claims.Subject())
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Warn("JWT validation failure",
				"error", err,
				"path", c.Path(),
				"method", c.Method(),
				"ip", c.IP())
			if c.Get(fiber.HeaderAuthorization) == "" {
				return response.SendUnauthorized(c, "Authorization header is required")
			}
			return response.SendUnauthorized(c, "Invalid or expired token")
		},
	})
}
