package file

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/type/response"
)

const publicCacheControl = "public, max-age=604800"

// GetIDCard streams an id card, falling back to the certificates store.
func (ctrl *FileController) GetIDCard(c *fiber.Ctx) error {
	return ctrl.stream(c, KindIDCards)
}

// ServePublic returns an unauthenticated handler streaming files of kind.
func (ctrl *FileController) ServePublic(kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, publicCacheControl)
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		return ctrl.stream(c, kind)
	}
}

func (ctrl *FileController) stream(c *fiber.Ctx, kind string) error {
	name, err := filenameParam(c)
	if err != nil {
		return response.SendFailed(c, "Invalid filename")
	}

	store := ctrl.store(kind)
	info, err := store.Stat(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return response.SendNotFound(c, "File not found")
		}
		return response.SendInternalError(c, err)
	}

	rc, err := store.Open(c.UserContext(), name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return response.SendNotFound(c, "File not found")
		}
		slog.Error("File stream", "kind", kind, "filename", name, "error", err)
		return response.SendInternalError(c, err)
	}

	c.Set(fiber.HeaderContentType, contentTypeFor(name))
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.SendStream(rc, int(info.Size))
}
