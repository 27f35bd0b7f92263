package payload

import (
	"encoding/json"

	"github.com/sunthewhat/event-cert-api/internal/renderer"
)

// CertificateTemplatePayload is the editor's template document.
type CertificateTemplatePayload struct {
	Data json.RawMessage `json:"data" validate:"required"`
}

type GenerateCertificatePayload struct {
	AttendeeID string                `json:"attendee_id" validate:"required,uuid"`
	EventID    int64                 `json:"event_id" validate:"required,gt=0"`
	Preview    *renderer.PreviewSize `json:"preview"`
}
