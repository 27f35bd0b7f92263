package certificate_controller

import (
	"context"

	certificatemodel "github.com/sunthewhat/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
)

type CertificateGenerator interface {
	ForAttendee(ctx context.Context, attendeeID string, eventID int64, preview *renderer.PreviewSize) (*generator.Result, error)
}

// CertificateController handles certificate template and generation requests
type CertificateController struct {
	certRepo  certificatemodel.ICertificateRepository
	eventRepo eventmodel.IEventRepository
	generator CertificateGenerator
}

// NewCertificateController creates a new certificate controller with injected dependencies
func NewCertificateController(
	certRepo certificatemodel.ICertificateRepository,
	eventRepo eventmodel.IEventRepository,
	gen CertificateGenerator,
) *CertificateController {
	return &CertificateController{
		certRepo:  certRepo,
		eventRepo: eventRepo,
		generator: gen,
	}
}
