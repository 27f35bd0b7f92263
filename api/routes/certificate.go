package routes

import (
	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/sunthewhat/event-cert-api/api/controllers/certificate"
)

func SetupCertificateRoutes(router fiber.Router, ctrl *certificate_controller.CertificateController) {
	certificateGroup := router.Group("certificates")

	certificateGroup.Post("generate", ctrl.Generate)

	certificateGroup.Get("event/:eventId", ctrl.GetByEvent)
	certificateGroup.Get("event/:eventId/all", ctrl.GetAllByEvent)
	certificateGroup.Put("event/:eventId", ctrl.Upsert)
	certificateGroup.Post("event/:eventId", ctrl.Create)
	certificateGroup.Delete("event/:eventId", ctrl.DeleteForEvent)

	certificateGroup.Get(":id", ctrl.GetByID)
	certificateGroup.Patch(":id", ctrl.Update)
	certificateGroup.Delete(":id", ctrl.Delete)
}
