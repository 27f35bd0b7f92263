package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

// parseTemplate reads the body and checks every placement against the event.
// It writes the failure response itself and reports whether to continue.
func (ctrl *CertificateController) parseTemplate(c *fiber.Ctx, eventID int64) ([]byte, bool, error) {
	body := new(payload.CertificateTemplatePayload)
	if err := c.BodyParser(body); err != nil {
		return nil, false, response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return nil, false, response.SendFailed(c, util.FirstValidationError(err))
	}

	tmpl, err := generator.DecodeTemplate(body.Data)
	if err != nil {
		return nil, false, response.SendFailed(c, "Invalid template data")
	}

	var event *model.Event
	if eventID > 0 {
		event, err = ctrl.eventRepo.GetByID(eventID)
		if err != nil {
			return nil, false, response.SendInternalError(c, err)
		}
		if event == nil {
			return nil, false, response.SendNotFound(c, "Event not found")
		}
	}

	if err := generator.ValidateTemplate(tmpl, event); err != nil {
		slog.Warn("Certificate template rejected", "event_id", eventID, "error", err)
		return nil, false, response.SendFailed(c, err.Error())
	}
	return body.Data, true, nil
}

// Upsert replaces the event's latest template, creating one if none exists.
func (ctrl *CertificateController) Upsert(c *fiber.Ctx) error {
	eventID, err := util.ParamInt64(c, "eventId")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	data, ok, err := ctrl.parseTemplate(c, eventID)
	if !ok {
		return err
	}

	cert, err := ctrl.certRepo.UpsertForEvent(eventID, data)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Certificate Upsert successful", "event_id", eventID, "id", cert.ID)
	return response.SendSuccess(c, "Certificate template saved", cert)
}

func (ctrl *CertificateController) Create(c *fiber.Ctx) error {
	eventID, err := util.ParamInt64(c, "eventId")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	data, ok, err := ctrl.parseTemplate(c, eventID)
	if !ok {
		return err
	}

	cert, err := ctrl.certRepo.CreateForEvent(eventID, data)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendCreated(c, "Certificate template created", cert)
}

func (ctrl *CertificateController) Update(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	existing, err := ctrl.certRepo.GetByID(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if existing == nil {
		return response.SendNotFound(c, "Certificate template not found")
	}

	data, ok, err := ctrl.parseTemplate(c, existing.Event)
	if !ok {
		return err
	}

	cert, err := ctrl.certRepo.UpdateByID(id, data)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		return response.SendNotFound(c, "Certificate template not found")
	}

	return response.SendSuccess(c, "Certificate template updated", cert)
}
