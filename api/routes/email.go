package routes

import (
	"github.com/gofiber/fiber/v2"
	email_controller "github.com/sunthewhat/event-cert-api/api/controllers/email"
	settings_controller "github.com/sunthewhat/event-cert-api/api/controllers/settings"
)

func SetupEmailRoutes(router fiber.Router, ctrl *email_controller.EmailController) {
	emailGroup := router.Group("email")

	emailGroup.Post("send", ctrl.Send)
	emailGroup.Post("send-registration", ctrl.SendRegistration)
	emailGroup.Post("send-qr", ctrl.SendQR)
	emailGroup.Post("send-certificate", ctrl.SendCertificate)
	emailGroup.Post("send-certificate/batch", ctrl.SendCertificateBatch)
	emailGroup.Post("send-certificate-simple", ctrl.SendCertificateSimple)
}

func SetupSettingsRoutes(router fiber.Router, ctrl *settings_controller.SettingsController) {
	settingsGroup := router.Group("settings")

	settingsGroup.Get("smtp", ctrl.GetSMTP)
	settingsGroup.Put("smtp", ctrl.SaveSMTP)
}
