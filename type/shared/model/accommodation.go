package model

import (
	"time"

	"gorm.io/datatypes"
)

const TableNameAccommodation = "accommodation"

type Room struct {
	Type     string  `json:"type"`
	Beds     int     `json:"beds"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price,omitempty"`
}

// Capacity is the number of beds across every room of this type.
func (r Room) Capacity() int {
	return r.Beds * r.Quantity
}

type Reservation struct {
	ID         string    `json:"id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	RoomType   string    `json:"room_type"`
	CheckIn    string    `json:"check_in,omitempty"`
	CheckOut   string    `json:"check_out,omitempty"`
	AttendeeID string    `json:"attendee_id,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Accommodation mapped from table <accommodation>
type Accommodation struct {
	ID           int64                            `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name         string                           `gorm:"column:name;not null" json:"name"`
	Address      *string                          `gorm:"column:address" json:"address"`
	Description  *string                          `gorm:"column:description" json:"description"`
	EventID      datatypes.JSONSlice[int64]       `gorm:"column:event_id" json:"event_id"`
	Rooms        datatypes.JSONSlice[Room]        `gorm:"column:rooms" json:"rooms"`
	Reservations datatypes.JSONSlice[Reservation] `gorm:"column:reservations" json:"reservations"`
	Enabled      *bool                            `gorm:"column:enabled;default:true" json:"enabled"`
	CreatedAt    time.Time                        `gorm:"column:created_at;not null;default:now()" json:"created_at"`
}

func (*Accommodation) TableName() string {
	return TableNameAccommodation
}

func (a *Accommodation) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

func (a *Accommodation) HasEvent(eventID int64) bool {
	for _, id := range a.EventID {
		if id == eventID {
			return true
		}
	}
	return false
}

type RoomAvailability struct {
	RoomType  string `json:"room_type"`
	Capacity  int    `json:"capacity"`
	Reserved  int    `json:"reserved"`
	Available int    `json:"available"`
}

// Availability reports free beds per room type.
func (a *Accommodation) Availability() []RoomAvailability {
	reserved := make(map[string]int)
	for _, r := range a.Reservations {
		reserved[r.RoomType]++
	}
	out := make([]RoomAvailability, 0, len(a.Rooms))
	for _, room := range a.Rooms {
		capacity := room.Capacity()
		avail := capacity - reserved[room.Type]
		if avail < 0 {
			avail = 0
		}
		out = append(out, RoomAvailability{
			RoomType:  room.Type,
			Capacity:  capacity,
			Reserved:  reserved[room.Type],
			Available: avail,
		})
	}
	return out
}

// AvailableBeds returns the free beds for roomType and whether the type exists.
func (a *Accommodation) AvailableBeds(roomType string) (int, bool) {
	for _, room := range a.Availability() {
		if room.RoomType == roomType {
			return room.Available, true
		}
	}
	return 0, false
}

func (a *Accommodation) TotalAvailable() int {
	total := 0
	for _, room := range a.Availability() {
		total += room.Available
	}
	return total
}
