package settingsmodel

import "github.com/sunthewhat/event-cert-api/common/util"

type ISettingsRepository interface {
	GetSMTPRaw() ([]byte, error)
	GetSMTP() (*util.SMTPSettings, error)
	SaveSMTP(raw []byte) error
}

var _ ISettingsRepository = (*SettingsRepository)(nil)

type MockSettingsRepository struct {
	GetSMTPRawFunc func() ([]byte, error)
	GetSMTPFunc    func() (*util.SMTPSettings, error)
	SaveSMTPFunc   func(raw []byte) error
}

var _ ISettingsRepository = (*MockSettingsRepository)(nil)

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) GetSMTPRaw() ([]byte, error) {
	if m.GetSMTPRawFunc != nil {
		return m.GetSMTPRawFunc()
	}
	return nil, nil
}

func (m *MockSettingsRepository) GetSMTP() (*util.SMTPSettings, error) {
	if m.GetSMTPFunc != nil {
		return m.GetSMTPFunc()
	}
	return nil, util.ErrSMTPNotConfigured
}

func (m *MockSettingsRepository) SaveSMTP(raw []byte) error {
	if m.SaveSMTPFunc != nil {
		return m.SaveSMTPFunc(raw)
	}
	return nil
}
