package certificate_controller

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/api/handler"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

// Generate renders the attendee's certificate and streams it as a download.
func (ctrl *CertificateController) Generate(c *fiber.Ctx) error {
	body := new(payload.GenerateCertificatePayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	result, err := ctrl.generator.ForAttendee(c.UserContext(), body.AttendeeID, body.EventID, body.Preview)
	if err != nil {
		slog.Error("Certificate Generate", "error", err, "attendee_id", body.AttendeeID, "event_id", body.EventID)
		switch {
		case generator.IsNotFound(err):
			return response.SendNotFound(c, err.Error())
		case renderer.KindOf(err) == renderer.KindInvalidInput:
			return response.SendFailed(c, err.Error())
		case renderer.KindOf(err) != 0:
			return c.Status(handler.StatusFor(err)).JSON(response.Error("Failed to generate certificate"))
		}
		return response.SendInternalError(c, err)
	}

	slog.Info("Certificate Generate successful", "attendee_id", body.AttendeeID, "event_id", body.EventID, "bytes", len(result.PDF))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	return c.Send(result.PDF)
}
