package routes

import (
	"github.com/gofiber/fiber/v2"
	file_controller "github.com/sunthewhat/event-cert-api/api/controllers/file"
)

func SetupFileRoutes(router fiber.Router, ctrl *file_controller.FileController) {
	fileGroup := router.Group("files")

	fileGroup.Post("certificates", ctrl.UploadCertificate)
	fileGroup.Get("certificates", ctrl.ListCertificates)
	fileGroup.Delete("certificates/:filename", ctrl.DeleteCertificate)

	fileGroup.Post("idcards", ctrl.UploadIDCard)
	fileGroup.Get("idcards", ctrl.ListIDCards)
	fileGroup.Get("idcards/:filename", ctrl.GetIDCard)
	fileGroup.Delete("idcards/:filename", ctrl.DeleteIDCard)
}

func SetupPublicRoutes(router fiber.Router, ctrl *file_controller.FileController) {
	router.Get("certificates/:filename", ctrl.ServePublic(file_controller.KindCertificates))
	router.Get("idcards/:filename", ctrl.ServePublic(file_controller.KindIDCards))
}
