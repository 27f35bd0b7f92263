package settings_controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	settings_controller "github.com/sunthewhat/event-cert-api/api/controllers/settings"
	settingsmodel "github.com/sunthewhat/event-cert-api/api/model/settingsModel"
	"github.com/sunthewhat/event-cert-api/common/util"
)

func TestSettingsController_GetSMTP(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func() *settingsmodel.MockSettingsRepository
		wantStatusCode int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name: "successful get - password masked",
			setupMock: func() *settingsmodel.MockSettingsRepository {
				mock := settingsmodel.NewMockSettingsRepository()
				mock.GetSMTPFunc = func() (*util.SMTPSettings, error) {
					return &util.SMTPSettings{Host: "smtp.example.com", Port: 587, Password: "hunter2"}, nil
				}
				return mock
			},
			wantStatusCode: fiber.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var response map[string]any
				if err := json.Unmarshal(body, &response); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				data := response["data"].(map[string]any)
				if data["password"] != "********" {
					t.Errorf("Expected masked password, got %v", data["password"])
				}
			},
		},
		{
			name: "failed - not configured",
			setupMock: func() *settingsmodel.MockSettingsRepository {
				mock := settingsmodel.NewMockSettingsRepository()
				mock.GetSMTPFunc = func() (*util.SMTPSettings, error) {
					return nil, util.ErrSMTPNotConfigured
				}
				return mock
			},
			wantStatusCode: fiber.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := settings_controller.NewSettingsController(tt.setupMock())
			app := fiber.New()
			app.Get("/settings/smtp", ctrl.GetSMTP)

			resp, err := app.Test(httptest.NewRequest("GET", "/settings/smtp", nil))
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			if resp.StatusCode != tt.wantStatusCode {
				t.Errorf("Expected status code %d, got %d", tt.wantStatusCode, resp.StatusCode)
			}
			if tt.checkResponse != nil {
				body, _ := io.ReadAll(resp.Body)
				tt.checkResponse(t, body)
			}
		})
	}
}

func TestSettingsController_SaveSMTP(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantSaved      bool
	}{
		{
			name:           "nested shape",
			body:           `{"smtp":{"smtp":{"host":"smtp.example.com","port":465,"encryption":"ssl"},"adminEmail":"admin@example.com"}}`,
			wantStatusCode: fiber.StatusOK,
			wantSaved:      true,
		},
		{
			name:           "flat shape",
			body:           `{"smtp":{"host":"smtp.example.com","adminEmail":"admin@example.com"}}`,
			wantStatusCode: fiber.StatusOK,
			wantSaved:      true,
		},
		{
			name:           "failed - no host",
			body:           `{"smtp":{"adminEmail":"admin@example.com"}}`,
			wantStatusCode: fiber.StatusBadRequest,
		},
		{
			name:           "failed - missing smtp",
			body:           `{}`,
			wantStatusCode: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved := false
			mock := settingsmodel.NewMockSettingsRepository()
			mock.SaveSMTPFunc = func(raw []byte) error {
				saved = true
				if _, err := util.ParseSMTPSettings(raw); err != nil {
					t.Errorf("Saved document does not parse: %v", err)
				}
				return nil
			}

			ctrl := settings_controller.NewSettingsController(mock)
			app := fiber.New()
			app.Put("/settings/smtp", ctrl.SaveSMTP)

			req := httptest.NewRequest("PUT", "/settings/smtp", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			if resp.StatusCode != tt.wantStatusCode {
				t.Errorf("Expected status code %d, got %d", tt.wantStatusCode, resp.StatusCode)
			}
			if saved != tt.wantSaved {
				t.Errorf("Expected saved=%v, got %v", tt.wantSaved, saved)
			}
		})
	}
}
