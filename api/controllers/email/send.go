package email_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func (ctrl *EmailController) Send(c *fiber.Ctx) error {
	body := new(payload.SendEmailPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	receipt, err := ctrl.mailer.SendGeneric(c.UserContext(), *body)
	if err != nil {
		return sendError(c, "Send", err)
	}
	return response.SendSuccess(c, "Email sent successfully", receipt)
}

func parseAttendeeEmail(c *fiber.Ctx) (*payload.AttendeeEmailPayload, error) {
	body := new(payload.AttendeeEmailPayload)
	if err := c.BodyParser(body); err != nil {
		return nil, response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return nil, response.SendFailed(c, util.FirstValidationError(err))
	}
	return body, nil
}

func (ctrl *EmailController) SendRegistration(c *fiber.Ctx) error {
	body, err := parseAttendeeEmail(c)
	if body == nil {
		return err
	}

	receipt, err := ctrl.mailer.SendRegistration(c.UserContext(), &body.Attendee, body.EventID)
	if err != nil {
		return sendError(c, "SendRegistration", err)
	}
	return response.SendSuccess(c, "Registration email sent successfully", receipt)
}

func (ctrl *EmailController) SendQR(c *fiber.Ctx) error {
	body, err := parseAttendeeEmail(c)
	if body == nil {
		return err
	}

	receipt, err := ctrl.mailer.SendQR(c.UserContext(), &body.Attendee, body.EventID)
	if err != nil {
		return sendError(c, "SendQR", err)
	}
	return response.SendSuccess(c, "QR code email sent successfully", receipt)
}

func (ctrl *EmailController) SendCertificate(c *fiber.Ctx) error {
	body, err := parseAttendeeEmail(c)
	if body == nil {
		return err
	}

	receipt, err := ctrl.mailer.SendCertificate(c.UserContext(), &body.Attendee, body.EventID)
	if err != nil {
		return sendError(c, "SendCertificate", err)
	}
	return response.SendSuccess(c, "Certificate email sent successfully", receipt)
}

func (ctrl *EmailController) SendCertificateSimple(c *fiber.Ctx) error {
	body := new(payload.SimpleCertificateEmailPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	receipt, err := ctrl.mailer.SendCertificateSimple(c.UserContext(), body.RecipientEmail, body.AttendeeID, body.EventID)
	if err != nil {
		return sendError(c, "SendCertificateSimple", err)
	}
	return response.SendSuccess(c, "Certificate email sent successfully", receipt)
}
