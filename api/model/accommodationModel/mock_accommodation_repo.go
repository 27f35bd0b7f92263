package accommodationmodel

import (
	"time"

	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type IAccommodationRepository interface {
	List(eventID *int64) ([]*model.Accommodation, error)
	Available(eventID int64) ([]*model.Accommodation, error)
	GetByID(id int64) (*model.Accommodation, error)
	Create(data payload.CreateAccommodationPayload) (*model.Accommodation, error)
	Update(id int64, data payload.UpdateAccommodationPayload) (*model.Accommodation, error)
	Delete(id int64) (*model.Accommodation, error)
	AddReservation(id int64, data payload.ReservationPayload, now time.Time) (*model.Reservation, error)
	UpdateReservation(id int64, rid string, data payload.ReservationUpdatePayload) (*model.Reservation, error)
	DeleteReservation(id int64, rid string) error
	BatchDeleteReservations(id int64, rids []string) (int, error)
	BatchUpdateReservations(id int64, rids []string, data payload.ReservationUpdatePayload) (int, error)
	MoveReservations(id int64, rids []string, target int64) (int, error)
	ListReservations(id int64, search string, page, limit int) ([]model.Reservation, int, error)
}

var _ IAccommodationRepository = (*AccommodationRepository)(nil)

type MockAccommodationRepository struct {
	ListFunc                    func(eventID *int64) ([]*model.Accommodation, error)
	AvailableFunc               func(eventID int64) ([]*model.Accommodation, error)
	GetByIDFunc                 func(id int64) (*model.Accommodation, error)
	CreateFunc                  func(data payload.CreateAccommodationPayload) (*model.Accommodation, error)
	UpdateFunc                  func(id int64, data payload.UpdateAccommodationPayload) (*model.Accommodation, error)
	DeleteFunc                  func(id int64) (*model.Accommodation, error)
	AddReservationFunc          func(id int64, data payload.ReservationPayload, now time.Time) (*model.Reservation, error)
	UpdateReservationFunc       func(id int64, rid string, data payload.ReservationUpdatePayload) (*model.Reservation, error)
	DeleteReservationFunc       func(id int64, rid string) error
	BatchDeleteReservationsFunc func(id int64, rids []string) (int, error)
	BatchUpdateReservationsFunc func(id int64, rids []string, data payload.ReservationUpdatePayload) (int, error)
	MoveReservationsFunc        func(id int64, rids []string, target int64) (int, error)
	ListReservationsFunc        func(id int64, search string, page, limit int) ([]model.Reservation, int, error)
}

var _ IAccommodationRepository = (*MockAccommodationRepository)(nil)

func NewMockAccommodationRepository() *MockAccommodationRepository {
	return &MockAccommodationRepository{}
}

func (m *MockAccommodationRepository) List(eventID *int64) ([]*model.Accommodation, error) {
	if m.ListFunc != nil {
		return m.ListFunc(eventID)
	}
	return []*model.Accommodation{}, nil
}

func (m *MockAccommodationRepository) Available(eventID int64) ([]*model.Accommodation, error) {
	if m.AvailableFunc != nil {
		return m.AvailableFunc(eventID)
	}
	return []*model.Accommodation{}, nil
}

func (m *MockAccommodationRepository) GetByID(id int64) (*model.Accommodation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockAccommodationRepository) Create(data payload.CreateAccommodationPayload) (*model.Accommodation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data)
	}
	return &model.Accommodation{ID: 1, Name: data.Name}, nil
}

func (m *MockAccommodationRepository) Update(id int64, data payload.UpdateAccommodationPayload) (*model.Accommodation, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, data)
	}
	return nil, nil
}

func (m *MockAccommodationRepository) Delete(id int64) (*model.Accommodation, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil, nil
}

func (m *MockAccommodationRepository) AddReservation(id int64, data payload.ReservationPayload, now time.Time) (*model.Reservation, error) {
	if m.AddReservationFunc != nil {
		return m.AddReservationFunc(id, data, now)
	}
	return &model.Reservation{ID: "mock", GuestName: data.GuestName, RoomType: data.RoomType, CreatedAt: now}, nil
}

func (m *MockAccommodationRepository) UpdateReservation(id int64, rid string, data payload.ReservationUpdatePayload) (*model.Reservation, error) {
	if m.UpdateReservationFunc != nil {
		return m.UpdateReservationFunc(id, rid, data)
	}
	return nil, ErrReservationNotFound
}

func (m *MockAccommodationRepository) DeleteReservation(id int64, rid string) error {
	if m.DeleteReservationFunc != nil {
		return m.DeleteReservationFunc(id, rid)
	}
	return nil
}

func (m *MockAccommodationRepository) BatchDeleteReservations(id int64, rids []string) (int, error) {
	if m.BatchDeleteReservationsFunc != nil {
		return m.BatchDeleteReservationsFunc(id, rids)
	}
	return len(rids), nil
}

func (m *MockAccommodationRepository) BatchUpdateReservations(id int64, rids []string, data payload.ReservationUpdatePayload) (int, error) {
	if m.BatchUpdateReservationsFunc != nil {
		return m.BatchUpdateReservationsFunc(id, rids, data)
	}
	return len(rids), nil
}

func (m *MockAccommodationRepository) MoveReservations(id int64, rids []string, target int64) (int, error) {
	if m.MoveReservationsFunc != nil {
		return m.MoveReservationsFunc(id, rids, target)
	}
	return len(rids), nil
}

func (m *MockAccommodationRepository) ListReservations(id int64, search string, page, limit int) ([]model.Reservation, int, error) {
	if m.ListReservationsFunc != nil {
		return m.ListReservationsFunc(id, search, page, limit)
	}
	return []model.Reservation{}, 0, nil
}
