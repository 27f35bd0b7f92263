package payload

import "github.com/sunthewhat/event-cert-api/type/shared/model"

type SendEmailPayload struct {
	RecipientEmail string            `json:"recipientEmail" validate:"required,email"`
	RecipientName  string            `json:"recipientName"`
	EmailType      string            `json:"emailType" validate:"required"`
	EventID        int64             `json:"eventId" validate:"required,gt=0"`
	EventData      map[string]string `json:"eventData"`
}

type AttendeeEmailPayload struct {
	Attendee model.Attendee `json:"attendee"`
	EventID  int64          `json:"eventId" validate:"required,gt=0"`
}

type SimpleCertificateEmailPayload struct {
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
	EventID        int64  `json:"eventId" validate:"required,gt=0"`
	AttendeeID     string `json:"attendeeId" validate:"required,uuid"`
}

type BatchCertificateEmailPayload struct {
	EventID     int64    `json:"eventId" validate:"required,gt=0"`
	AttendeeIDs []string `json:"attendeeIds" validate:"required,min=1,dive,uuid"`
}
