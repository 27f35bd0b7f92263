package payload

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

// EventIDs accepts a single id, a list of ids or null.
type EventIDs []int64

func (e *EventIDs) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = EventIDs{}
		return nil
	}
	if data[0] == '[' {
		var ids []int64
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		*e = ids
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("event_id must be a number or a list of numbers: %w", err)
	}
	*e = EventIDs{id}
	return nil
}

type CreateAccommodationPayload struct {
	Name        string       `json:"name" validate:"required"`
	Address     *string      `json:"address"`
	Description *string      `json:"description"`
	EventID     EventIDs     `json:"event_id"`
	Rooms       []model.Room `json:"rooms" validate:"dive"`
	Enabled     *bool        `json:"enabled"`
}

type UpdateAccommodationPayload struct {
	Name        *string       `json:"name"`
	Address     *string       `json:"address"`
	Description *string       `json:"description"`
	EventID     *EventIDs     `json:"event_id"`
	Rooms       *[]model.Room `json:"rooms"`
	Enabled     *bool         `json:"enabled"`
}

type ReservationPayload struct {
	GuestName  string `json:"guest_name" validate:"required"`
	GuestEmail string `json:"guest_email" validate:"omitempty,email"`
	RoomType   string `json:"room_type" validate:"required"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	AttendeeID string `json:"attendee_id"`
	Notes      string `json:"notes"`
}

type ReservationUpdatePayload struct {
	GuestName  *string `json:"guest_name"`
	GuestEmail *string `json:"guest_email" validate:"omitempty,email"`
	RoomType   *string `json:"room_type"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	AttendeeID *string `json:"attendee_id"`
	Notes      *string `json:"notes"`
}

type ReservationBatchDeletePayload struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

type ReservationBatchUpdatePayload struct {
	IDs     []string                 `json:"ids" validate:"required,min=1"`
	Updates ReservationUpdatePayload `json:"updates"`
}

type ReservationMovePayload struct {
	IDs                   []string `json:"ids" validate:"required,min=1"`
	TargetAccommodationID int64    `json:"targetAccommodationId" validate:"required,gt=0"`
}
