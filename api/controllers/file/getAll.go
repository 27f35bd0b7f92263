package file

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/type/response"
)

type fileInfo struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

func (ctrl *FileController) ListCertificates(c *fiber.Ctx) error {
	return ctrl.list(c, KindCertificates)
}

func (ctrl *FileController) ListIDCards(c *fiber.Ctx) error {
	return ctrl.list(c, KindIDCards)
}

func (ctrl *FileController) list(c *fiber.Ctx, kind string) error {
	store := ctrl.certificates
	if kind == KindIDCards {
		store = ctrl.idcards
	}

	objects, err := store.List(c.UserContext())
	if err != nil {
		return response.SendInternalError(c, err)
	}

	files := make([]fileInfo, 0, len(objects))
	for _, obj := range objects {
		files = append(files, fileInfo{
			Filename:   obj.Name,
			URL:        util.PublicFileURL(kind, obj.Name),
			Size:       obj.Size,
			ModifiedAt: obj.ModifiedAt,
		})
	}

	return response.SendSuccess(c, "Files fetched", files)
}
