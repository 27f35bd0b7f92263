package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func (ctrl *CertificateController) Delete(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	cert, err := ctrl.certRepo.RemoveByID(id)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		return response.SendNotFound(c, "Certificate template not found")
	}

	slog.Info("Certificate Delete successful", "id", id, "event_id", cert.Event)
	return response.SendSuccess(c, "Certificate template deleted", cert)
}

func (ctrl *CertificateController) DeleteForEvent(c *fiber.Ctx) error {
	eventID, err := util.ParamInt64(c, "eventId")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	removed, err := ctrl.certRepo.RemoveForEvent(eventID)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificate templates deleted", fiber.Map{"deleted": removed})
}
