package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/response"
)

// GetByEvent returns the template currently used for the event.
func (ctrl *CertificateController) GetByEvent(c *fiber.Ctx) error {
	eventID, err := util.ParamInt64(c, "eventId")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	cert, err := ctrl.certRepo.GetByEventID(eventID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		return response.SendNotFound(c, "Certificate template not found")
	}

	return response.SendSuccess(c, "Certificate template found", cert)
}

func (ctrl *CertificateController) GetAllByEvent(c *fiber.Ctx) error {
	eventID, err := util.ParamInt64(c, "eventId")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	certs, err := ctrl.certRepo.FetchAllByEventID(eventID)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Certificate templates fetched", certs)
}

func (ctrl *CertificateController) GetByID(c *fiber.Ctx) error {
	id, err := util.ParamInt64(c, "id")
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	cert, err := ctrl.certRepo.GetByID(id)
	if err != nil {
		slog.Error("Certificate GetByID", "id", id, "error", err)
		return response.SendInternalError(c, err)
	}
	if cert == nil {
		slog.Warn("Certificate GetByID not found", "id", id)
		return response.SendNotFound(c, "Certificate template not found")
	}

	return response.SendSuccess(c, "Certificate template found", cert)
}
