package file

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/type/response"
)

var (
	certificateExtensions = []string{".pdf"}
	idcardExtensions      = []string{".pdf", ".png", ".jpg", ".jpeg"}
)

func (ctrl *FileController) UploadCertificate(c *fiber.Ctx) error {
	return ctrl.upload(c, KindCertificates, "certificate", certificateExtensions)
}

func (ctrl *FileController) UploadIDCard(c *fiber.Ctx) error {
	return ctrl.upload(c, KindIDCards, "idcard", idcardExtensions)
}

func contentTypeFor(name string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func (ctrl *FileController) upload(c *fiber.Ctx, kind, field string, allowed []string) error {
	file, err := c.FormFile(field)
	if err != nil {
		return response.SendFailed(c, "No file provided")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !slices.Contains(allowed, ext) {
		return response.SendFailed(c, fmt.Sprintf("Only %s files are allowed", strings.Join(allowed, ", ")))
	}

	if file.Size > MaxUploadSize {
		return response.SendFailed(c, fmt.Sprintf("File size too large (%dMB out off 15MB)", file.Size/(1024*1024)))
	}

	if err := ctrl.scan(c, file); err != nil {
		if errors.Is(err, filestore.ErrInfected) {
			slog.Warn("File Upload rejected", "kind", kind, "filename", file.Filename, "error", err)
			return response.SendFailed(c, "File rejected by virus scan")
		}
		return response.SendInternalError(c, err)
	}

	src, err := file.Open()
	if err != nil {
		return response.SendInternalError(c, err)
	}
	defer src.Close()

	name := filestore.StoredName(ctrl.now(), file.Filename)
	if err := ctrl.store(kind).Put(c.UserContext(), name, src, file.Size, contentTypeFor(name)); err != nil {
		slog.Error("File Upload", "kind", kind, "filename", name, "error", err)
		return response.SendInternalError(c, err)
	}

	slog.Info("File Upload successful", "kind", kind, "filename", name, "size", file.Size)
	return response.SendSuccess(c, "File uploaded successfully", fiber.Map{
		"filename": name,
		"url":      util.PublicFileURL(kind, name),
		"size":     file.Size,
	})
}

func (ctrl *FileController) scan(c *fiber.Ctx, file *multipart.FileHeader) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	return ctrl.scanner.Scan(c.UserContext(), src)
}
