package file

import (
	"time"

	certificatemodel "github.com/sunthewhat/event-cert-api/api/model/certificateModel"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
)

const (
	KindCertificates = "certificates"
	KindIDCards      = "idcards"

	MaxUploadSize = 15 * 1024 * 1024
)

// FileController serves the certificate template and id card stores
type FileController struct {
	certificates filestore.Store
	idcards      filestore.Store
	scanner      filestore.Scanner
	certRepo     certificatemodel.ICertificateRepository
	now          func() time.Time
}

func NewFileController(
	certificates filestore.Store,
	idcards filestore.Store,
	scanner filestore.Scanner,
	certRepo certificatemodel.ICertificateRepository,
) *FileController {
	if scanner == nil {
		scanner = filestore.NopScanner{}
	}
	return &FileController{
		certificates: certificates,
		idcards:      idcards,
		scanner:      scanner,
		certRepo:     certRepo,
		now:          time.Now,
	}
}

func (ctrl *FileController) store(kind string) filestore.Store {
	if kind == KindIDCards {
		return filestore.Fallback{Store: ctrl.idcards, Secondary: ctrl.certificates}
	}
	return ctrl.certificates
}
