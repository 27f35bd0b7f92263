package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

func Recover() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e any) {
			slog.Error("Panic recovered", "panic", e, "path", c.Path(), "method", c.Method())
		},
	})
}

func Cors(origins []*string) fiber.Handler {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o != nil && *o != "" {
			allowed = append(allowed, *o)
		}
	}
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}
	return cors.New(cors.Config{
		AllowOrigins:  strings.Join(allowed, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders: "Content-Disposition",
	})
}

func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Generator: uuid.NewString,
	})
}
