package settings_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	settingsmodel "github.com/sunthewhat/event-cert-api/api/model/settingsModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/response"
)

type SettingsController struct {
	settingsRepo settingsmodel.ISettingsRepository
}

func NewSettingsController(settingsRepo settingsmodel.ISettingsRepository) *SettingsController {
	return &SettingsController{settingsRepo: settingsRepo}
}

// GetSMTP never returns the stored password.
func (ctrl *SettingsController) GetSMTP(c *fiber.Ctx) error {
	settings, err := ctrl.settingsRepo.GetSMTP()
	if errors.Is(err, util.ErrSMTPNotConfigured) {
		return response.SendNotFound(c, err.Error())
	}
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "SMTP settings found", settings.Masked())
}

func (ctrl *SettingsController) SaveSMTP(c *fiber.Ctx) error {
	body := new(payload.SMTPSettingsPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendFailed(c, "Failed to parse body")
	}
	if err := util.ValidateStruct(body); err != nil {
		return response.SendFailed(c, util.FirstValidationError(err))
	}

	settings, err := util.ParseSMTPSettings(body.SMTP)
	if err != nil {
		return response.SendFailed(c, err.Error())
	}

	if err := ctrl.settingsRepo.SaveSMTP(body.SMTP); err != nil {
		return response.SendInternalError(c, err)
	}

	slog.Info("Settings SaveSMTP successful", "host", settings.Host, "port", settings.Port)
	return response.SendSuccess(c, "SMTP settings saved", settings.Masked())
}
