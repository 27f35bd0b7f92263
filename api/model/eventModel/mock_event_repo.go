package eventmodel

import (
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

type IEventRepository interface {
	List(search string, page, limit int) ([]*model.Event, int64, error)
	GetByID(id int64) (*model.Event, error)
	Autocomplete(search string, limit int) ([]model.EventOption, error)
	Create(data payload.CreateEventPayload) (*model.Event, error)
	Update(id int64, data payload.UpdateEventPayload) (*model.Event, error)
	MergeEmail(id int64, kind string, tmpl model.EmailTemplate) (*model.Event, error)
	ReplaceList(id int64, list string, ids []string) (*model.Event, error)
	Delete(id int64) (*model.Event, error)
}

var _ IEventRepository = (*EventRepository)(nil)

type MockEventRepository struct {
	ListFunc         func(search string, page, limit int) ([]*model.Event, int64, error)
	GetByIDFunc      func(id int64) (*model.Event, error)
	AutocompleteFunc func(search string, limit int) ([]model.EventOption, error)
	CreateFunc       func(data payload.CreateEventPayload) (*model.Event, error)
	UpdateFunc       func(id int64, data payload.UpdateEventPayload) (*model.Event, error)
	MergeEmailFunc   func(id int64, kind string, tmpl model.EmailTemplate) (*model.Event, error)
	ReplaceListFunc  func(id int64, list string, ids []string) (*model.Event, error)
	DeleteFunc       func(id int64) (*model.Event, error)
}

var _ IEventRepository = (*MockEventRepository)(nil)

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{}
}

func (m *MockEventRepository) List(search string, page, limit int) ([]*model.Event, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(search, page, limit)
	}
	return nil, 0, nil
}

func (m *MockEventRepository) GetByID(id int64) (*model.Event, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockEventRepository) Autocomplete(search string, limit int) ([]model.EventOption, error) {
	if m.AutocompleteFunc != nil {
		return m.AutocompleteFunc(search, limit)
	}
	return nil, nil
}

func (m *MockEventRepository) Create(data payload.CreateEventPayload) (*model.Event, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(data)
	}
	return nil, nil
}

func (m *MockEventRepository) Update(id int64, data payload.UpdateEventPayload) (*model.Event, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(id, data)
	}
	return nil, nil
}

func (m *MockEventRepository) MergeEmail(id int64, kind string, tmpl model.EmailTemplate) (*model.Event, error) {
	if m.MergeEmailFunc != nil {
		return m.MergeEmailFunc(id, kind, tmpl)
	}
	return nil, nil
}

func (m *MockEventRepository) ReplaceList(id int64, list string, ids []string) (*model.Event, error) {
	if m.ReplaceListFunc != nil {
		return m.ReplaceListFunc(id, list, ids)
	}
	return nil, nil
}

func (m *MockEventRepository) Delete(id int64) (*model.Event, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil, nil
}
