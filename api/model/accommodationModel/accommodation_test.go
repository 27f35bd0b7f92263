package accommodationmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/event-cert-api/test/helpers"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

func TestCheckCapacity(t *testing.T) {
	acc := &model.Accommodation{
		Rooms: []model.Room{{Type: "double", Beds: 2, Quantity: 1}},
		Reservations: []model.Reservation{
			{ID: "1", RoomType: "double"},
		},
	}

	assert.NoError(t, CheckCapacity(acc, "double", 1))
	assert.ErrorIs(t, CheckCapacity(acc, "double", 2), ErrRoomFull)
	assert.ErrorIs(t, CheckCapacity(acc, "suite", 1), ErrUnknownRoomType)
}

func TestFilterReservations(t *testing.T) {
	list := []model.Reservation{
		{ID: "1", GuestName: "Ana Petrović", GuestEmail: "ana@example.com"},
		{ID: "2", GuestName: "Marko Ilić", GuestEmail: "marko@example.org"},
	}

	assert.Len(t, FilterReservations(list, ""), 2)
	assert.Equal(t, "2", FilterReservations(list, "MARKO")[0].ID)
	assert.Equal(t, "1", FilterReservations(list, "example.com")[0].ID)
	assert.Empty(t, FilterReservations(list, "nobody"))
}

func TestApplyReservationUpdate(t *testing.T) {
	res := model.Reservation{GuestName: "Ana", RoomType: "single", Notes: "late"}
	room := "double"
	ApplyReservationUpdate(&res, payload.ReservationUpdatePayload{RoomType: &room})

	assert.Equal(t, "double", res.RoomType)
	assert.Equal(t, "Ana", res.GuestName, "Unset fields are kept")
	assert.Equal(t, "late", res.Notes)
}

func newRepo(t *testing.T) *AccommodationRepository {
	container := helpers.SetupTestDatabase(t)
	return NewAccommodationRepository(helpers.GetTestDB(t, container), nil)
}

// TestAccommodationRepository_ListByEvent tests the event containment filter
func TestAccommodationRepository_ListByEvent(t *testing.T) {
	repo := newRepo(t)

	_, err := repo.Create(payload.CreateAccommodationPayload{Name: "Hotel A", EventID: payload.EventIDs{1, 2}})
	require.NoError(t, err)
	_, err = repo.Create(payload.CreateAccommodationPayload{Name: "Hotel B", EventID: payload.EventIDs{2}})
	require.NoError(t, err)

	eventID := int64(1)
	list, err := repo.List(&eventID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Hotel A", list[0].Name)

	all, err := repo.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// TestAccommodationRepository_Reservations tests the reservation lifecycle and overbooking guard
func TestAccommodationRepository_Reservations(t *testing.T) {
	repo := newRepo(t)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	acc, err := repo.Create(payload.CreateAccommodationPayload{
		Name:    "Hostel",
		EventID: payload.EventIDs{5},
		Rooms:   []model.Room{{Type: "single", Beds: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	first, err := repo.AddReservation(acc.ID, payload.ReservationPayload{GuestName: "Ana", RoomType: "single"}, now)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	_, err = repo.AddReservation(acc.ID, payload.ReservationPayload{GuestName: "Marko", RoomType: "single"}, now)
	assert.ErrorIs(t, err, ErrRoomFull)

	available, err := repo.Available(5)
	require.NoError(t, err)
	assert.Empty(t, available, "Fully booked accommodations are hidden")

	notes := "arrives late"
	updated, err := repo.UpdateReservation(acc.ID, first.ID, payload.ReservationUpdatePayload{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "arrives late", updated.Notes)

	page, total, err := repo.ListReservations(acc.ID, "ana", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, first.ID, page[0].ID)

	require.NoError(t, repo.DeleteReservation(acc.ID, first.ID))
	assert.ErrorIs(t, repo.DeleteReservation(acc.ID, first.ID), ErrReservationNotFound)
}

// TestAccommodationRepository_MoveReservations tests moving guests between accommodations
func TestAccommodationRepository_MoveReservations(t *testing.T) {
	repo := newRepo(t)
	now := time.Now()

	src, err := repo.Create(payload.CreateAccommodationPayload{
		Name:  "Source",
		Rooms: []model.Room{{Type: "double", Beds: 2, Quantity: 2}},
	})
	require.NoError(t, err)
	dst, err := repo.Create(payload.CreateAccommodationPayload{
		Name:  "Target",
		Rooms: []model.Room{{Type: "double", Beds: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	var ids []string
	for _, guest := range []string{"A", "B", "C"} {
		res, err := repo.AddReservation(src.ID, payload.ReservationPayload{GuestName: guest, RoomType: "double"}, now)
		require.NoError(t, err)
		ids = append(ids, res.ID)
	}

	_, err = repo.MoveReservations(src.ID, ids, dst.ID)
	assert.ErrorIs(t, err, ErrRoomFull)

	moved, err := repo.MoveReservations(src.ID, ids[:2], dst.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	source, err := repo.GetByID(src.ID)
	require.NoError(t, err)
	assert.Len(t, source.Reservations, 1)

	target, err := repo.GetByID(dst.ID)
	require.NoError(t, err)
	assert.Len(t, target.Reservations, 2)
}
