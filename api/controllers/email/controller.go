package email_controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
	"github.com/sunthewhat/event-cert-api/internal/queue"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type Mailer interface {
	SendGeneric(ctx context.Context, p payload.SendEmailPayload) (*mailing.Receipt, error)
	SendRegistration(ctx context.Context, a *model.Attendee, eventID int64) (*mailing.Receipt, error)
	SendQR(ctx context.Context, a *model.Attendee, eventID int64) (*mailing.Receipt, error)
	SendCertificate(ctx context.Context, a *model.Attendee, eventID int64) (*mailing.Receipt, error)
	SendCertificateSimple(ctx context.Context, recipient, attendeeID string, eventID int64) (*mailing.Receipt, error)
	SendCertificateBatch(ctx context.Context, eventID int64, attendeeIDs []string) []mailing.BatchResult
}

var _ Mailer = (*mailing.Service)(nil)

type EmailController struct {
	mailer Mailer
	queue  queue.Enqueuer
}

// NewEmailController wires the mail service. A nil enqueuer makes batch sends
// run in process.
func NewEmailController(mailer Mailer, enqueuer queue.Enqueuer) *EmailController {
	return &EmailController{mailer: mailer, queue: enqueuer}
}

func sendError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, mailing.ErrEventNotFound),
		errors.Is(err, mailing.ErrAttendeeNotFound),
		generator.IsNotFound(err):
		return response.SendNotFound(c, err.Error())
	case errors.Is(err, mailing.ErrTemplateDisabled),
		errors.Is(err, mailing.ErrIncompleteAttendee),
		renderer.KindOf(err) == renderer.KindInvalidInput:
		return response.SendFailed(c, err.Error())
	case errors.Is(err, util.ErrSMTPNotConfigured):
		return response.SendError(c, err.Error())
	}
	slog.Error("Email "+op, "error", err)
	return response.SendError(c, "Failed to send email: "+err.Error())
}
