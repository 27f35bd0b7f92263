// Package generator loads the records a certificate is drawn from and hands
// them to the renderer.
package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	attendeemodel "github.com/sunthewhat/event-cert-api/api/model/attendeeModel"
	certificatemodel "github.com/sunthewhat/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

var (
	ErrAttendeeNotFound = errors.New("attendee not found")
	ErrEventNotFound    = errors.New("event not found")
	ErrTemplateNotFound = errors.New("certificate template not found for event")
)

// IsNotFound reports whether err means one of the source records is missing.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAttendeeNotFound) ||
		errors.Is(err, ErrEventNotFound) ||
		errors.Is(err, ErrTemplateNotFound) ||
		errors.Is(err, renderer.ErrNotFound)
}

type Generator struct {
	renderer     *renderer.Renderer
	events       eventmodel.IEventRepository
	attendees    attendeemodel.IAttendeeRepository
	certificates certificatemodel.ICertificateRepository
	now          func() time.Time
}

func New(
	r *renderer.Renderer,
	events eventmodel.IEventRepository,
	attendees attendeemodel.IAttendeeRepository,
	certificates certificatemodel.ICertificateRepository,
) *Generator {
	return &Generator{
		renderer:     r,
		events:       events,
		attendees:    attendees,
		certificates: certificates,
		now:          time.Now,
	}
}

type Result struct {
	PDF      []byte
	Filename string
	Attendee *model.Attendee
	Event    *model.Event
}

// ForAttendee renders the latest template of eventID for the attendee with attendeeID.
func (g *Generator) ForAttendee(ctx context.Context, attendeeID string, eventID int64, preview *renderer.PreviewSize) (*Result, error) {
	attendee, err := g.attendees.GetByID(attendeeID)
	if err != nil {
		return nil, err
	}
	if attendee == nil {
		return nil, fmt.Errorf("%w: %s", ErrAttendeeNotFound, attendeeID)
	}
	return g.Render(ctx, attendee, eventID, preview)
}

// Render draws the latest template of eventID for attendee.
func (g *Generator) Render(ctx context.Context, attendee *model.Attendee, eventID int64, preview *renderer.PreviewSize) (*Result, error) {
	event, err := g.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, eventID)
	}

	cert, err := g.certificates.GetByEventID(eventID)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, fmt.Errorf("%w: %d", ErrTemplateNotFound, eventID)
	}

	tmpl, err := DecodeTemplate(cert.Data)
	if err != nil {
		return nil, err
	}

	pdf, err := g.renderer.Render(ctx, renderer.RenderRequest{
		Template: tmpl,
		Attendee: ToRendererAttendee(attendee),
		Event:    ToRendererEvent(event),
		Preview:  preview,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		PDF:      pdf,
		Filename: DownloadName(attendee, g.now()),
		Attendee: attendee,
		Event:    event,
	}, nil
}

// DecodeTemplate parses a stored template document. Malformed JSON is reported
// as invalid input.
func DecodeTemplate(data []byte) (renderer.TemplateData, error) {
	var tmpl renderer.TemplateData
	if len(data) == 0 {
		return tmpl, &renderer.Error{Kind: renderer.KindInvalidInput, Op: "DecodeTemplate", Err: errors.New("empty template data")}
	}
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return tmpl, &renderer.Error{Kind: renderer.KindInvalidInput, Op: "DecodeTemplate", Err: err}
	}
	return tmpl, nil
}

func ToRendererAttendee(a *model.Attendee) renderer.Attendee {
	out := renderer.Attendee{
		ID:        a.ID.String(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Data:      map[string]any(a.Data),
	}
	if a.EventID != nil {
		out.EventID = strconv.FormatInt(*a.EventID, 10)
	}
	return out
}

func ToRendererEvent(e *model.Event) renderer.Event {
	form := make([]renderer.FormField, 0, len(e.Form))
	for _, f := range e.Form {
		form = append(form, renderer.FormField{
			ID:       f.ID,
			Name:     f.Name,
			Label:    f.Label,
			Type:     f.Type,
			Required: f.Required,
		})
	}
	return renderer.Event{Name: e.Name, Form: form}
}

// DownloadName is the filename offered for a generated certificate.
func DownloadName(a *model.Attendee, now time.Time) string {
	return filestore.SanitizeFilename(fmt.Sprintf("certificate_%s_%s_%d.pdf", a.FirstName, a.LastName, now.UnixMilli()))
}

// AttachmentName is the filename used when a certificate is mailed.
func AttachmentName(a *model.Attendee) string {
	return filestore.SanitizeFilename(fmt.Sprintf("certificate_%s_%s.pdf", a.FirstName, a.LastName))
}

// ValidateTemplate rejects placements the renderer could never draw for event.
func ValidateTemplate(tmpl renderer.TemplateData, event *model.Event) error {
	for i, field := range tmpl.Fields {
		if !field.Type.Valid() {
			return fmt.Errorf("field %d: unknown field type %q", i, field.Type)
		}
		switch field.Type {
		case renderer.FieldCustomText:
			if field.CustomText == "" {
				return fmt.Errorf("field %d: custom_text requires text", i)
			}
		case renderer.FieldFormField:
			if field.FormFieldID == "" {
				return fmt.Errorf("field %d: form_field requires a form field id", i)
			}
			if event != nil {
				if _, ok := ToRendererEvent(event).FormField(field.FormFieldID); !ok {
					return fmt.Errorf("field %d: form field %q is not part of the event form", i, field.FormFieldID)
				}
			}
		}
	}
	return nil
}
