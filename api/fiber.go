package api

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sunthewhat/event-cert-api/api/handler"
	"github.com/sunthewhat/event-cert-api/api/middleware"
	"github.com/sunthewhat/event-cert-api/api/routes"
	"github.com/sunthewhat/event-cert-api/common"
	"github.com/sunthewhat/event-cert-api/internal/metrics"
)

// bodyLimit leaves room for multipart overhead on top of the largest upload.
const bodyLimit = 16 * 1024 * 1024

// NewApp builds the fiber app with every route mounted.
func NewApp(ctrls routes.Controllers, m *metrics.Metrics) *fiber.App {
	cfg := fiber.Config{
		AppName:       "eventcert api",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     bodyLimit,
	}
	app := fiber.New(cfg)

	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.Recover())
	app.Use(middleware.Cors(common.Config.Cors))

	if m != nil {
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}

	routes.Init(app, ctrls, *common.Config.JWTSecret)

	app.Use(handler.HandleNotFound)

	return app
}

// InitFiber serves app until ctx is cancelled.
func InitFiber(ctx context.Context, app *fiber.App) error {
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down server")
		if err := app.Shutdown(); err != nil {
			slog.Error("Server shutdown", "error", err)
		}
	}()

	port := *common.Config.Port
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	slog.Info("Starting server", "port", port)
	return app.Listen(port)
}
