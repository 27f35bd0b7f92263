// Package mailing sends the event emails: generic templated messages,
// registration confirmations, QR codes and certificates.
package mailing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	attendeemodel "github.com/sunthewhat/event-cert-api/api/model/attendeeModel"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	settingsmodel "github.com/sunthewhat/event-cert-api/api/model/settingsModel"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"golang.org/x/sync/errgroup"
)

const (
	TypeRegistration = "registration"
	TypeQR           = "qr"
	TypeCertificate  = "certificate"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrAttendeeNotFound   = errors.New("attendee not found")
	ErrTemplateDisabled   = errors.New("email template is not enabled or not found")
	ErrIncompleteAttendee = errors.New("missing attendee email, first name, or last name")
)

// CertificateRenderer produces the certificate attached to certificate emails.
type CertificateRenderer interface {
	Render(ctx context.Context, attendee *model.Attendee, eventID int64, preview *renderer.PreviewSize) (*generator.Result, error)
}

// Observer is told the outcome of every send attempt.
type Observer func(emailType string, err error)

type Option func(*Service)

func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithCompanyName replaces the built-in sender name used when the saved
// settings carry none.
func WithCompanyName(name string) Option {
	return func(s *Service) { s.companyName = name }
}

type Service struct {
	settings     settingsmodel.ISettingsRepository
	events       eventmodel.IEventRepository
	attendees    attendeemodel.IAttendeeRepository
	certificates CertificateRenderer
	sender       util.MailSender

	workers     int
	observer    Observer
	now         func() time.Time
	companyName string
}

func New(
	settings settingsmodel.ISettingsRepository,
	events eventmodel.IEventRepository,
	attendees attendeemodel.IAttendeeRepository,
	certificates CertificateRenderer,
	sender util.MailSender,
	opts ...Option,
) *Service {
	s := &Service{
		settings:     settings,
		events:       events,
		attendees:    attendees,
		certificates: certificates,
		sender:       sender,
		workers:      4,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Message is one templated email. DefaultSubject and DefaultBody are used when
// the event template leaves them empty.
type Message struct {
	RecipientEmail string
	RecipientName  string
	EmailType      string
	EventID        int64
	Vars           util.MailVars
	Attachments    []util.Attachment
	DefaultSubject string
	DefaultBody    string
}

type Receipt struct {
	Recipient    string `json:"recipient"`
	AttendeeName string `json:"attendeeName,omitempty"`
	EmailType    string `json:"emailType"`
	EventName    string `json:"eventName"`
}

// prepared holds what every send needs once the template is known to be enabled.
type prepared struct {
	settings *util.SMTPSettings
	event    *model.Event
	template model.EmailTemplate
}

// prepare loads the SMTP settings and the event, and rejects disabled templates.
func (s *Service) prepare(ctx context.Context, emailType string, eventID int64) (*prepared, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSMTP()
	if err != nil {
		return nil, err
	}
	if settings.CompanyName == "" && s.companyName != "" {
		settings.CompanyName = s.companyName
	}

	event, err := s.events.GetByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, eventID)
	}

	tmpl, ok := event.EmailTemplate(emailType)
	if !ok || !tmpl.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrTemplateDisabled, emailType)
	}
	return &prepared{settings: settings, event: event, template: tmpl}, nil
}

// Send renders the event's template for msg.EmailType and delivers it.
func (s *Service) Send(ctx context.Context, msg Message) (receipt *Receipt, err error) {
	defer s.observe(msg.EmailType, &err)

	p, err := s.prepare(ctx, msg.EmailType, msg.EventID)
	if err != nil {
		return nil, err
	}
	return s.deliver(p, msg)
}

func (s *Service) observe(emailType string, err *error) {
	if s.observer != nil {
		s.observer(emailType, *err)
	}
}

func (s *Service) deliver(p *prepared, msg Message) (*Receipt, error) {
	event := p.event
	subject, body := p.template.Subject, p.template.Body
	if subject == "" {
		subject = msg.DefaultSubject
	}
	if subject == "" {
		subject = fmt.Sprintf("%s - %s", msg.EmailType, event.Name)
	}
	if body == "" {
		body = msg.DefaultBody
	}
	if body == "" {
		body = fmt.Sprintf("<p>This is your %s for %s</p>", msg.EmailType, event.Name)
	}

	vars := msg.Vars
	vars.RecipientEmail = msg.RecipientEmail
	vars.RecipientName = msg.RecipientName
	vars.EventName = event.Name
	vars.CompanyName = p.settings.Company()
	subject, body = util.ReplacePlaceholders(s.now(), vars, subject, body)

	sendErr := s.sender.Send(p.settings, util.Mail{
		To:          msg.RecipientEmail,
		ToName:      msg.RecipientName,
		Subject:     subject,
		HTML:        body,
		Attachments: msg.Attachments,
	})
	if sendErr != nil {
		slog.Error("Mailing Send", "error", sendErr, "type", msg.EmailType, "event_id", msg.EventID, "recipient", msg.RecipientEmail)
		return nil, fmt.Errorf("failed to send email: %w", sendErr)
	}

	slog.Info("Mailing Send", "type", msg.EmailType, "event_id", msg.EventID, "recipient", msg.RecipientEmail)
	return &Receipt{
		Recipient:    msg.RecipientEmail,
		AttendeeName: msg.RecipientName,
		EmailType:    msg.EmailType,
		EventName:    event.Name,
	}, nil
}

// SendGeneric delivers any template type with values supplied by the caller.
func (s *Service) SendGeneric(ctx context.Context, p payload.SendEmailPayload) (*Receipt, error) {
	data := p.EventData
	return s.Send(ctx, Message{
		RecipientEmail: p.RecipientEmail,
		RecipientName:  p.RecipientName,
		EmailType:      p.EmailType,
		EventID:        p.EventID,
		Vars: util.MailVars{
			FirstName:        data["firstName"],
			LastName:         data["lastName"],
			FullName:         data["fullName"],
			Email:            data["email"],
			Phone:            data["phone"],
			Company:          data["company"],
			RegistrationDate: data["registrationDate"],
		},
	})
}

func attendeeVars(a *model.Attendee) util.MailVars {
	return util.MailVars{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		FullName:  a.FirstName + " " + a.LastName,
		Email:     a.Email,
		Phone:     dataString(a.Data, "phone"),
		Company:   dataString(a.Data, "company"),
	}
}

func dataString(data map[string]any, key string) string {
	if v, ok := data[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

func checkAttendee(a *model.Attendee) error {
	if a == nil || a.Email == "" || a.FirstName == "" || a.LastName == "" {
		return ErrIncompleteAttendee
	}
	return nil
}

func (s *Service) SendRegistration(ctx context.Context, a *model.Attendee, eventID int64) (*Receipt, error) {
	if err := checkAttendee(a); err != nil {
		return nil, err
	}
	vars := attendeeVars(a)
	vars.RegistrationDate = s.now().Format(renderer.DateLayout)

	return s.Send(ctx, Message{
		RecipientEmail: a.Email,
		RecipientName:  a.FirstName + " " + a.LastName,
		EmailType:      TypeRegistration,
		EventID:        eventID,
		Vars:           vars,
	})
}

// SendQR mails a PNG QR code encoding the attendee id.
func (s *Service) SendQR(ctx context.Context, a *model.Attendee, eventID int64) (*Receipt, error) {
	if err := checkAttendee(a); err != nil {
		return nil, err
	}

	png, err := util.GenerateQRCode(a.ID.String())
	if err != nil {
		slog.Error("Mailing SendQR", "error", err, "attendee_id", a.ID)
		return nil, err
	}

	return s.Send(ctx, Message{
		RecipientEmail: a.Email,
		RecipientName:  a.FirstName + " " + a.LastName,
		EmailType:      TypeQR,
		EventID:        eventID,
		Vars:           attendeeVars(a),
		Attachments: []util.Attachment{{
			Filename:    fmt.Sprintf("qr_code_%s_%s.png", a.FirstName, a.LastName),
			ContentType: "image/png",
			Data:        png,
		}},
		DefaultSubject: "QR Code - {{eventName}}",
		DefaultBody:    "<p>Your QR code for {{eventName}}</p>",
	})
}

// SendCertificate renders the event's latest template for a and mails it.
func (s *Service) SendCertificate(ctx context.Context, a *model.Attendee, eventID int64) (*Receipt, error) {
	if err := checkAttendee(a); err != nil {
		return nil, err
	}
	return s.sendCertificate(ctx, a, a.Email, eventID,
		"Certificate - {{eventName}}", "<p>Your certificate for {{eventName}}</p>")
}

// SendCertificateSimple loads the attendee by id and mails the certificate to recipient.
func (s *Service) SendCertificateSimple(ctx context.Context, recipient, attendeeID string, eventID int64) (*Receipt, error) {
	a, err := s.attendee(attendeeID)
	if err != nil {
		return nil, err
	}
	return s.sendCertificate(ctx, a, recipient, eventID,
		"Your Certificate", "<p>Please find your certificate attached.</p>")
}

// SendCertificateTo loads the attendee by id and mails the certificate to the
// attendee's own address.
func (s *Service) SendCertificateTo(ctx context.Context, attendeeID string, eventID int64) (*Receipt, error) {
	a, err := s.attendee(attendeeID)
	if err != nil {
		return nil, err
	}
	return s.SendCertificate(ctx, a, eventID)
}

func (s *Service) attendee(id string) (*model.Attendee, error) {
	a, err := s.attendees.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrAttendeeNotFound, id)
	}
	return a, nil
}

// sendCertificate renders only after the certificate template is known to be enabled.
func (s *Service) sendCertificate(ctx context.Context, a *model.Attendee, recipient string, eventID int64, subject, body string) (receipt *Receipt, err error) {
	defer s.observe(TypeCertificate, &err)

	p, err := s.prepare(ctx, TypeCertificate, eventID)
	if err != nil {
		return nil, err
	}

	res, err := s.certificates.Render(ctx, a, eventID, nil)
	if err != nil {
		slog.Error("Mailing SendCertificate render", "error", err, "attendee_id", a.ID, "event_id", eventID)
		return nil, err
	}

	return s.deliver(p, Message{
		RecipientEmail: recipient,
		RecipientName:  a.FirstName + " " + a.LastName,
		EmailType:      TypeCertificate,
		EventID:        eventID,
		Vars:           attendeeVars(a),
		Attachments: []util.Attachment{{
			Filename:    generator.AttachmentName(a),
			ContentType: "application/pdf",
			Data:        res.PDF,
		}},
		DefaultSubject: subject,
		DefaultBody:    body,
	})
}

type BatchResult struct {
	AttendeeID string `json:"attendeeId"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	TaskID     string `json:"taskId,omitempty"`
}

// SendCertificateBatch renders and mails certificates for every attendee using
// at most the configured number of workers. Results keep the input order.
func (s *Service) SendCertificateBatch(ctx context.Context, eventID int64, attendeeIDs []string) []BatchResult {
	results := make([]BatchResult, len(attendeeIDs))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range attendeeIDs {
		g.Go(func() error {
			results[i] = BatchResult{AttendeeID: id, Success: true}
			if _, err := s.SendCertificateTo(ctx, id, eventID); err != nil {
				results[i].Success = false
				results[i].Error = err.Error()
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
