package certificatemodel

import (
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

// ICertificateRepository defines the interface for certificate template operations
type ICertificateRepository interface {
	GetByEventID(eventID int64) (*model.Certificate, error)
	GetByID(id int64) (*model.Certificate, error)
	FetchAllByEventID(eventID int64) ([]*model.Certificate, error)
	UpsertForEvent(eventID int64, data []byte) (*model.Certificate, error)
	CreateForEvent(eventID int64, data []byte) (*model.Certificate, error)
	UpdateByID(id int64, data []byte) (*model.Certificate, error)
	RemoveByID(id int64) (*model.Certificate, error)
	RemoveForEvent(eventID int64) (int64, error)
	RemoveByFilename(filename string) (int64, error)
}

// Ensure CertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*CertificateRepository)(nil)

// MockCertificateRepository is a mock implementation for testing
type MockCertificateRepository struct {
	GetByEventIDFunc      func(eventID int64) (*model.Certificate, error)
	GetByIDFunc           func(id int64) (*model.Certificate, error)
	FetchAllByEventIDFunc func(eventID int64) ([]*model.Certificate, error)
	UpsertForEventFunc    func(eventID int64, data []byte) (*model.Certificate, error)
	CreateForEventFunc    func(eventID int64, data []byte) (*model.Certificate, error)
	UpdateByIDFunc        func(id int64, data []byte) (*model.Certificate, error)
	RemoveByIDFunc        func(id int64) (*model.Certificate, error)
	RemoveForEventFunc    func(eventID int64) (int64, error)
	RemoveByFilenameFunc  func(filename string) (int64, error)
}

// Ensure MockCertificateRepository implements ICertificateRepository
var _ ICertificateRepository = (*MockCertificateRepository)(nil)

func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{}
}

func (m *MockCertificateRepository) GetByEventID(eventID int64) (*model.Certificate, error) {
	if m.GetByEventIDFunc != nil {
		return m.GetByEventIDFunc(eventID)
	}
	return nil, nil
}

func (m *MockCertificateRepository) GetByID(id int64) (*model.Certificate, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *MockCertificateRepository) FetchAllByEventID(eventID int64) ([]*model.Certificate, error) {
	if m.FetchAllByEventIDFunc != nil {
		return m.FetchAllByEventIDFunc(eventID)
	}
	return nil, nil
}

func (m *MockCertificateRepository) UpsertForEvent(eventID int64, data []byte) (*model.Certificate, error) {
	if m.UpsertForEventFunc != nil {
		return m.UpsertForEventFunc(eventID, data)
	}
	return nil, nil
}

func (m *MockCertificateRepository) CreateForEvent(eventID int64, data []byte) (*model.Certificate, error) {
	if m.CreateForEventFunc != nil {
		return m.CreateForEventFunc(eventID, data)
	}
	return nil, nil
}

func (m *MockCertificateRepository) UpdateByID(id int64, data []byte) (*model.Certificate, error) {
	if m.UpdateByIDFunc != nil {
		return m.UpdateByIDFunc(id, data)
	}
	return nil, nil
}

func (m *MockCertificateRepository) RemoveByID(id int64) (*model.Certificate, error) {
	if m.RemoveByIDFunc != nil {
		return m.RemoveByIDFunc(id)
	}
	return nil, nil
}

func (m *MockCertificateRepository) RemoveForEvent(eventID int64) (int64, error) {
	if m.RemoveForEventFunc != nil {
		return m.RemoveForEventFunc(eventID)
	}
	return 0, nil
}

func (m *MockCertificateRepository) RemoveByFilename(filename string) (int64, error) {
	if m.RemoveByFilenameFunc != nil {
		return m.RemoveByFilenameFunc(filename)
	}
	return 0, nil
}
