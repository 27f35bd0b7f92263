package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

const DefaultCompanyName = "Event Organization"

var ErrSMTPNotConfigured = errors.New("SMTP configuration not found")

// SMTPSettings is the smtp column of the settings row, in either of the shapes
// the admin UI has saved over time.
type SMTPSettings struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Encryption  string `json:"encryption"`
	AdminEmail  string `json:"adminEmail"`
	SilentEmail string `json:"silentEmail"`
	CompanyName string `json:"companyName"`
}

type smtpServer struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Encryption string `json:"encryption"`
}

// ParseSMTPSettings accepts {smtp:{host,...}, adminEmail, ...} as well as the
// flat {host, ..., adminEmail, ...} shape.
func ParseSMTPSettings(raw []byte) (*SMTPSettings, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, ErrSMTPNotConfigured
	}

	var doc struct {
		SMTPSettings
		SMTP *smtpServer `json:"smtp"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("invalid SMTP settings: %w", err)
	}

	settings := doc.SMTPSettings
	if doc.SMTP != nil {
		settings.Host = doc.SMTP.Host
		settings.Port = doc.SMTP.Port
		settings.Username = doc.SMTP.Username
		settings.Password = doc.SMTP.Password
		settings.Encryption = doc.SMTP.Encryption
	}
	if settings.Host == "" {
		return nil, ErrSMTPNotConfigured
	}
	if settings.Port == 0 {
		settings.Port = 587
	}
	if settings.Encryption == "" {
		settings.Encryption = "tls"
	}
	return &settings, nil
}

func (s *SMTPSettings) Company() string {
	if s.CompanyName == "" {
		return DefaultCompanyName
	}
	return s.CompanyName
}

// Masked returns a copy safe to send back to the admin UI.
func (s SMTPSettings) Masked() SMTPSettings {
	if s.Password != "" {
		s.Password = "********"
	}
	return s
}

func NewDialer(s *SMTPSettings) *gomail.Dialer {
	dialer := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)
	dialer.SSL = strings.EqualFold(s.Encryption, "ssl")
	return dialer
}

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Mail struct {
	To          string
	ToName      string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// NewMessage builds the message sent from the company address. Every message is
// also copied to the silent address when one is configured.
func NewMessage(s *SMTPSettings, mail Mail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.AdminEmail, s.Company())
	if mail.ToName != "" {
		m.SetAddressHeader("To", mail.To, mail.ToName)
	} else {
		m.SetHeader("To", mail.To)
	}
	if s.SilentEmail != "" {
		m.SetHeader("Bcc", s.SilentEmail)
	}
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/html", mail.HTML)

	for _, a := range mail.Attachments {
		data := a.Data
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if a.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {a.ContentType},
			}))
		}
		m.Attach(a.Filename, settings...)
	}
	return m
}

type MailSender interface {
	Send(s *SMTPSettings, mail Mail) error
}

type SMTPSender struct{}

func (SMTPSender) Send(s *SMTPSettings, mail Mail) error {
	return NewDialer(s).DialAndSend(NewMessage(s, mail))
}

// MailVars are the values substituted into subject and body placeholders.
type MailVars struct {
	RecipientName    string
	RecipientEmail   string
	EventName        string
	CompanyName      string
	FirstName        string
	LastName         string
	FullName         string
	Email            string
	Phone            string
	Company          string
	RegistrationDate string
}

const mailDateLayout = "2. 1. 2006."

func (v MailVars) replacer(now time.Time) *strings.Replacer {
	recipientName := v.RecipientName
	if recipientName == "" {
		recipientName, _, _ = strings.Cut(v.RecipientEmail, "@")
	}
	fullName := v.FullName
	if fullName == "" {
		if v.FirstName != "" && v.LastName != "" {
			fullName = v.FirstName + " " + v.LastName
		} else {
			fullName = v.RecipientName
		}
	}
	email := v.Email
	if email == "" {
		email = v.RecipientEmail
	}
	company := v.CompanyName
	if company == "" {
		company = DefaultCompanyName
	}
	registered := v.RegistrationDate
	if registered == "" {
		registered = now.Format(mailDateLayout)
	}

	return strings.NewReplacer(
		"{{recipientName}}", recipientName,
		"{{recipientEmail}}", v.RecipientEmail,
		"{{eventName}}", v.EventName,
		"{{companyName}}", company,
		"{{firstName}}", v.FirstName,
		"{{lastName}}", v.LastName,
		"{{fullName}}", fullName,
		"{{email}}", email,
		"{{phone}}", v.Phone,
		"{{company}}", v.Company,
		"{{registrationDate}}", registered,
		"{{currentDate}}", now.Format(mailDateLayout),
		"{{currentYear}}", now.Format("2006"),
	)
}

// ReplacePlaceholders substitutes every known {{placeholder}} in subject and body.
func ReplacePlaceholders(now time.Time, vars MailVars, subject, body string) (string, string) {
	r := vars.replacer(now)
	return r.Replace(subject), r.Replace(body)
}
