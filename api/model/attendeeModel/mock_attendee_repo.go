package attendeemodel

import (
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type IAttendeeRepository interface {
	GetByEmail(email string) (*model.Attendee, error)
	GetByID(id string) (*model.Attendee, error)
	GetByIDs(ids []string) ([]*model.Attendee, error)
	Search(search string, page, limit int) ([]*model.Attendee, int64, error)
	Save(data payload.SaveAttendeePayload) (*model.Attendee, bool, error)
	UpdateEvents(id string, events []int64) (*model.Attendee, error)
	Update(id string, data payload.UpdateAttendeePayload) (*model.Attendee, error)
	Delete(id string) (*model.Attendee, error)
}

var _ IAttendeeRepository = (*AttendeeRepository)(nil)

type MockAttendeeRepository struct {
	GetByEmailFunc   func(email string) (*model.Attendee, error)
	GetByIDFunc      func(id string) (*model.Attendee, error)
	GetByIDsFunc     func(ids []string) ([]*model.Attendee, error)
	SearchFunc       func(search string, page, limit int) ([]*model.Attendee, int64, error)
	SaveFunc         func(data payload.SaveAttendeePayload) (*model.Attendee, bool, error)
	UpdateEventsFunc func(id string, events []int64) (*model.Attendee, error)
	UpdateFunc       func(id string, data payload.UpdateAttendeePayload) (*model.Attendee, error)
	DeleteFunc       func(id string) (*model.Attendee, error)
}

var _ IAttendeeRepository = (*MockAttendeeRepository)(nil)

func NewMockAttendeeRepository() *MockAttendeeRepository {
	return &MockAttendeeRepository{}
}

func (m *MockAttendeeRepository) GetByEmail(email string) (*model.Attendee, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, nil
}

func (m *MockAttendeeRepository) GetByID(id string) (*model.Attendee, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockAttendeeRepository) GetByIDs(ids []string) ([]*model.Attendee, error) {
	if m.GetByIDsFunc != nil {
		return m.GetByIDsFunc(ids)
	}
	return nil, nil
}

func (m *MockAttendeeRepository) Search(search string, page, limit int) ([]*model.Attendee, int64, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(search, page, limit)
	}
	return nil, 0, nil
}

func (m *MockAttendeeRepository) Save(data payload.SaveAttendeePayload) (*model.Attendee, bool, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(data)
	}
	return nil, false, nil
}

func (m *MockAttendeeRepository) UpdateEvents(id string, events []int64) (*model.Attendee, error) {
	if m.UpdateEventsFunc != nil {
		return m.UpdateEventsFunc(id, events)
	}
	return nil, nil
}

func (m *MockAttendeeRepository) Update(id string, data payload.UpdateAttendeePayload) (*model.Attendee, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, data)
	}
	return nil, nil
}

func (m *MockAttendeeRepository) Delete(id string) (*model.Attendee, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil, nil
}
