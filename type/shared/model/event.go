package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameEvent = "events"

type FormField struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

type EmailTemplate struct {
	Enabled bool   `json:"enabled"`
	Subject string `json:"subject"`
	Body    string `json:"bodyHtml"`
}

type EmailTemplates map[string]EmailTemplate

// Event mapped from table <events>
type Event struct {
	ID          int64                              `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name        string                             `gorm:"column:name;not null" json:"name"`
	Description *string                            `gorm:"column:description" json:"description"`
	Date        *time.Time                         `gorm:"column:date" json:"date"`
	Location    *string                            `gorm:"column:location" json:"location"`
	Form        datatypes.JSONSlice[FormField]     `gorm:"column:form" json:"form"`
	Emails      datatypes.JSONType[EmailTemplates] `gorm:"column:emails" json:"emails"`
	Attendees   datatypes.JSONSlice[string]        `gorm:"column:attendees" json:"attendees"`
	Attended    datatypes.JSONSlice[string]        `gorm:"column:attended" json:"attended"`
	Paid        datatypes.JSONSlice[string]        `gorm:"column:paid" json:"paid"`
	CreatedAt   time.Time                          `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Event) TableName() string {
	return TableNameEvent
}

// EmailTemplate returns the stored template for kind, if any.
func (e *Event) EmailTemplate(kind string) (EmailTemplate, bool) {
	tmpl, ok := e.Emails.Data()[kind]
	return tmpl, ok
}

type EventOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
