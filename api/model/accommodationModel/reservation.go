package accommodationmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccommodationNotFound = errors.New("accommodation not found")
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrUnknownRoomType       = errors.New("unknown room type")
	ErrRoomFull              = errors.New("no beds available for room type")
)

// withLocked runs fn on the row locked for update and saves the reservations
// it leaves behind.
func (r *AccommodationRepository) withLocked(tx *gorm.DB, id int64, fn func(acc *model.Accommodation) error) error {
	acc := new(model.Accommodation)
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(acc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAccommodationNotFound
		}
		return err
	}

	if err := fn(acc); err != nil {
		return err
	}

	return tx.Model(acc).Update("reservations", datatypes.JSONSlice[model.Reservation](acc.Reservations)).Error
}

func (r *AccommodationRepository) mutate(op string, id int64, fn func(acc *model.Accommodation) error) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return r.withLocked(tx, id, fn)
	})
	if err != nil {
		if !isDomainError(err) {
			slog.Error("Accommodation "+op, "error", err, "id", id)
		}
		return err
	}
	return nil
}

func isDomainError(err error) bool {
	return errors.Is(err, ErrAccommodationNotFound) ||
		errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrUnknownRoomType) ||
		errors.Is(err, ErrRoomFull)
}

// CheckCapacity fails when adding extra guests of roomType would overbook acc.
func CheckCapacity(acc *model.Accommodation, roomType string, extra int) error {
	available, ok := acc.AvailableBeds(roomType)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoomType, roomType)
	}
	if available < extra {
		return fmt.Errorf("%w: %s", ErrRoomFull, roomType)
	}
	return nil
}

func ApplyReservationUpdate(res *model.Reservation, u payload.ReservationUpdatePayload) {
	if u.GuestName != nil {
		res.GuestName = *u.GuestName
	}
	if u.GuestEmail != nil {
		res.GuestEmail = *u.GuestEmail
	}
	if u.RoomType != nil {
		res.RoomType = *u.RoomType
	}
	if u.CheckIn != nil {
		res.CheckIn = *u.CheckIn
	}
	if u.CheckOut != nil {
		res.CheckOut = *u.CheckOut
	}
	if u.AttendeeID != nil {
		res.AttendeeID = *u.AttendeeID
	}
	if u.Notes != nil {
		res.Notes = *u.Notes
	}
}

func indexOf(list []model.Reservation, rid string) int {
	for i, res := range list {
		if res.ID == rid {
			return i
		}
	}
	return -1
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (r *AccommodationRepository) AddReservation(id int64, data payload.ReservationPayload, now time.Time) (*model.Reservation, error) {
	res := model.Reservation{
		ID:         uuid.NewString(),
		GuestName:  data.GuestName,
		GuestEmail: data.GuestEmail,
		RoomType:   data.RoomType,
		CheckIn:    data.CheckIn,
		CheckOut:   data.CheckOut,
		AttendeeID: data.AttendeeID,
		Notes:      data.Notes,
		CreatedAt:  now,
	}

	err := r.mutate("AddReservation", id, func(acc *model.Accommodation) error {
		if err := CheckCapacity(acc, res.RoomType, 1); err != nil {
			return err
		}
		acc.Reservations = append(acc.Reservations, res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.record(operationlogmodel.OperationCreate, id, map[string]any{"reservation": res.ID})
	return &res, nil
}

func (r *AccommodationRepository) UpdateReservation(id int64, rid string, data payload.ReservationUpdatePayload) (*model.Reservation, error) {
	var updated model.Reservation

	err := r.mutate("UpdateReservation", id, func(acc *model.Accommodation) error {
		i := indexOf(acc.Reservations, rid)
		if i < 0 {
			return ErrReservationNotFound
		}
		current := acc.Reservations[i]
		next := current
		ApplyReservationUpdate(&next, data)

		if next.RoomType != current.RoomType {
			if err := CheckCapacity(acc, next.RoomType, 1); err != nil {
				return err
			}
		}
		acc.Reservations[i] = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"reservation": rid})
	return &updated, nil
}

func (r *AccommodationRepository) DeleteReservation(id int64, rid string) error {
	err := r.mutate("DeleteReservation", id, func(acc *model.Accommodation) error {
		i := indexOf(acc.Reservations, rid)
		if i < 0 {
			return ErrReservationNotFound
		}
		acc.Reservations = append(acc.Reservations[:i], acc.Reservations[i+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	r.record(operationlogmodel.OperationDelete, id, map[string]any{"reservation": rid})
	return nil
}

// BatchDeleteReservations removes every listed reservation and reports how
// many were found.
func (r *AccommodationRepository) BatchDeleteReservations(id int64, rids []string) (int, error) {
	removed := 0
	err := r.mutate("BatchDeleteReservations", id, func(acc *model.Accommodation) error {
		drop := idSet(rids)
		kept := make([]model.Reservation, 0, len(acc.Reservations))
		for _, res := range acc.Reservations {
			if _, ok := drop[res.ID]; ok {
				removed++
				continue
			}
			kept = append(kept, res)
		}
		acc.Reservations = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.record(operationlogmodel.OperationDelete, id, map[string]any{"reservations": rids, "count": removed})
	return removed, nil
}

// BatchUpdateReservations applies the same change to every listed reservation.
// Room type changes are checked against the capacity left after the batch.
func (r *AccommodationRepository) BatchUpdateReservations(id int64, rids []string, data payload.ReservationUpdatePayload) (int, error) {
	updated := 0
	err := r.mutate("BatchUpdateReservations", id, func(acc *model.Accommodation) error {
		targets := idSet(rids)
		next := make([]model.Reservation, len(acc.Reservations))
		copy(next, acc.Reservations)

		moving := 0
		for i := range next {
			if _, ok := targets[next[i].ID]; !ok {
				continue
			}
			before := next[i].RoomType
			ApplyReservationUpdate(&next[i], data)
			if next[i].RoomType != before {
				moving++
			}
			updated++
		}
		if moving > 0 && data.RoomType != nil {
			if err := CheckCapacity(acc, *data.RoomType, moving); err != nil {
				return err
			}
		}
		acc.Reservations = next
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"reservations": rids, "count": updated})
	return updated, nil
}

// MoveReservations transfers reservations to target, keeping their room types.
func (r *AccommodationRepository) MoveReservations(id int64, rids []string, target int64) (int, error) {
	if id == target {
		return 0, nil
	}

	moved := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var moving []model.Reservation
		err := r.withLocked(tx, id, func(src *model.Accommodation) error {
			take := idSet(rids)
			kept := make([]model.Reservation, 0, len(src.Reservations))
			for _, res := range src.Reservations {
				if _, ok := take[res.ID]; ok {
					moving = append(moving, res)
					continue
				}
				kept = append(kept, res)
			}
			src.Reservations = kept
			return nil
		})
		if err != nil {
			return err
		}

		return r.withLocked(tx, target, func(dst *model.Accommodation) error {
			perType := make(map[string]int)
			for _, res := range moving {
				perType[res.RoomType]++
			}
			for roomType, n := range perType {
				if err := CheckCapacity(dst, roomType, n); err != nil {
					return err
				}
			}
			dst.Reservations = append(dst.Reservations, moving...)
			moved = len(moving)
			return nil
		})
	})
	if err != nil {
		if !isDomainError(err) {
			slog.Error("Accommodation MoveReservations", "error", err, "id", id, "target", target)
		}
		return 0, err
	}

	r.record(operationlogmodel.OperationUpdate, id, map[string]any{"moved_to": target, "count": moved})
	return moved, nil
}

// FilterReservations matches guest name and email case-insensitively.
func FilterReservations(list []model.Reservation, search string) []model.Reservation {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return list
	}
	out := make([]model.Reservation, 0, len(list))
	for _, res := range list {
		if strings.Contains(strings.ToLower(res.GuestName), search) ||
			strings.Contains(strings.ToLower(res.GuestEmail), search) {
			out = append(out, res)
		}
	}
	return out
}

func (r *AccommodationRepository) ListReservations(id int64, search string, page, limit int) ([]model.Reservation, int, error) {
	acc, err := r.GetByID(id)
	if err != nil {
		return nil, 0, err
	}
	if acc == nil {
		return nil, 0, ErrAccommodationNotFound
	}

	matched := FilterReservations(acc.Reservations, search)
	total := len(matched)

	start := (page - 1) * limit
	if start >= total {
		return []model.Reservation{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}
