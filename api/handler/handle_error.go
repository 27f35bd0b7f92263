package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func HandleError(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(
			response.Error(fiberErr.Message),
		)
	}

	return c.Status(StatusFor(err)).JSON(
		response.Error(err.Error()),
	)
}

// StatusFor maps renderer failures onto HTTP statuses. Anything else is a 500.
func StatusFor(err error) int {
	switch renderer.KindOf(err) {
	case renderer.KindInvalidInput:
		return fiber.StatusBadRequest
	case renderer.KindNotFound:
		return fiber.StatusNotFound
	case renderer.KindRenderFailure:
		slog.Error("Renderer failure", "error", err)
		return fiber.StatusInternalServerError
	}
	return fiber.StatusInternalServerError
}
