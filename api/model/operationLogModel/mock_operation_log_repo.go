package operationlogmodel

import (
	"sync"

	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

var _ IOperationLogRepository = (*MongoOperationLogRepository)(nil)
var _ IOperationLogRepository = (*FileOperationLogRepository)(nil)

// MockOperationLogRepository records entries synchronously for assertions.
type MockOperationLogRepository struct {
	mu       sync.Mutex
	Entries  []model.OperationLog
	ListFunc func(table string, limit int) ([]*model.OperationLog, error)
}

var _ IOperationLogRepository = (*MockOperationLogRepository)(nil)

func NewMockOperationLogRepository() *MockOperationLogRepository {
	return &MockOperationLogRepository{}
}

func (m *MockOperationLogRepository) Record(entry model.OperationLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
}

func (m *MockOperationLogRepository) Recorded() []model.OperationLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.OperationLog(nil), m.Entries...)
}

func (m *MockOperationLogRepository) List(table string, limit int) ([]*model.OperationLog, error) {
	if m.ListFunc != nil {
		return m.ListFunc(table, limit)
	}
	return nil, nil
}
