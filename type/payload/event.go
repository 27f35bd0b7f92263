package payload

import (
	"time"

	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type CreateEventPayload struct {
	Name        string               `json:"name" validate:"required,max=255"`
	Description *string              `json:"description"`
	Date        *time.Time           `json:"date"`
	Location    *string              `json:"location"`
	Form        []model.FormField    `json:"form" validate:"dive"`
	Emails      model.EmailTemplates `json:"emails"`
}

type UpdateEventPayload struct {
	Name        *string            `json:"name" validate:"omitempty,max=255"`
	Description *string            `json:"description"`
	Date        *time.Time         `json:"date"`
	Location    *string            `json:"location"`
	Form        *[]model.FormField `json:"form"`
}

type EventAttendeeListPayload struct {
	IDs []string `json:"ids" validate:"dive,uuid"`
}
