package file

import (
	"errors"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/type/response"
)

func filenameParam(c *fiber.Ctx) (string, error) {
	name, err := url.PathUnescape(c.Params("filename"))
	if err != nil {
		return "", filestore.ErrInvalidName
	}
	return name, filestore.ValidateName(name)
}

// DeleteCertificate removes the template file and every template row pointing at it.
func (ctrl *FileController) DeleteCertificate(c *fiber.Ctx) error {
	name, err := filenameParam(c)
	if err != nil {
		return response.SendFailed(c, "Invalid filename")
	}

	if err := ctrl.certificates.Delete(c.UserContext(), name); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return response.SendNotFound(c, "File not found")
		}
		return response.SendInternalError(c, err)
	}

	removed, err := ctrl.certRepo.RemoveByFilename(name)
	if err != nil {
		slog.Error("File DeleteCertificate template cleanup", "filename", name, "error", err)
		return response.SendInternalError(c, err)
	}

	slog.Info("File DeleteCertificate successful", "filename", name, "templates_removed", removed)
	return response.SendSuccess(c, "File deleted", fiber.Map{"filename": name, "templatesRemoved": removed})
}

func (ctrl *FileController) DeleteIDCard(c *fiber.Ctx) error {
	name, err := filenameParam(c)
	if err != nil {
		return response.SendFailed(c, "Invalid filename")
	}

	if err := ctrl.idcards.Delete(c.UserContext(), name); err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return response.SendNotFound(c, "File not found")
		}
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "File deleted", fiber.Map{"filename": name})
}
