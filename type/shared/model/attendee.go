package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const TableNameAttendee = "attendees"

// Attendee mapped from table <attendees>
type Attendee struct {
	ID        uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FirstName string                     `gorm:"column:first_name;not null" json:"first_name"`
	LastName  string                     `gorm:"column:last_name;not null" json:"last_name"`
	Email     string                     `gorm:"column:email;not null;uniqueIndex" json:"email"`
	EventID   *int64                     `gorm:"column:event_id" json:"event_id"`
	Events    datatypes.JSONSlice[int64] `gorm:"column:events" json:"events"`
	Data      datatypes.JSONMap          `gorm:"column:data" json:"data"`
	CreatedAt time.Time                  `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Attendee) TableName() string {
	return TableNameAttendee
}

func (a *Attendee) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Attendee) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}
