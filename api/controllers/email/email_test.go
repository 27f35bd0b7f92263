package email_controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	email_controller "github.com/sunthewhat/event-cert-api/api/controllers/email"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
	"github.com/sunthewhat/event-cert-api/type/payload"
	"github.com/sunthewhat/event-cert-api/type/shared/model"
)

const (
	firstID  = "5f0c3c7e-2b7a-4d55-9a2e-6a7f2f0e8b11"
	secondID = "0b6c39a4-0f43-4a4b-9d9f-7f3d0c1d2e33"
)

type stubMailer struct {
	err   error
	batch func(eventID int64, ids []string) []mailing.BatchResult
	seen  *model.Attendee
}

func (m *stubMailer) receipt(emailType string) (*mailing.Receipt, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &mailing.Receipt{Recipient: "ana@example.com", EmailType: emailType, EventName: "Summit"}, nil
}

func (m *stubMailer) SendGeneric(_ context.Context, p payload.SendEmailPayload) (*mailing.Receipt, error) {
	return m.receipt(p.EmailType)
}

func (m *stubMailer) SendRegistration(_ context.Context, a *model.Attendee, _ int64) (*mailing.Receipt, error) {
	m.seen = a
	return m.receipt(mailing.TypeRegistration)
}

func (m *stubMailer) SendQR(_ context.Context, a *model.Attendee, _ int64) (*mailing.Receipt, error) {
	m.seen = a
	return m.receipt(mailing.TypeQR)
}

func (m *stubMailer) SendCertificate(_ context.Context, a *model.Attendee, _ int64) (*mailing.Receipt, error) {
	m.seen = a
	return m.receipt(mailing.TypeCertificate)
}

func (m *stubMailer) SendCertificateSimple(context.Context, string, string, int64) (*mailing.Receipt, error) {
	return m.receipt(mailing.TypeCertificate)
}

func (m *stubMailer) SendCertificateBatch(_ context.Context, eventID int64, ids []string) []mailing.BatchResult {
	return m.batch(eventID, ids)
}

type enqueuerFunc func(ctx context.Context, eventID int64, attendeeID string) (string, error)

func (f enqueuerFunc) EnqueueCertificateEmail(ctx context.Context, eventID int64, attendeeID string) (string, error) {
	return f(ctx, eventID, attendeeID)
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestEmailController_ErrorMapping(t *testing.T) {
	const body = `{"attendee":{"id":"` + firstID + `","first_name":"Ana","last_name":"Horvat","email":"ana@example.com"},"eventId":3}`

	tests := []struct {
		name           string
		err            error
		wantStatusCode int
	}{
		{name: "successful send", wantStatusCode: fiber.StatusOK},
		{name: "failed - template disabled", err: mailing.ErrTemplateDisabled, wantStatusCode: fiber.StatusBadRequest},
		{name: "failed - incomplete attendee", err: mailing.ErrIncompleteAttendee, wantStatusCode: fiber.StatusBadRequest},
		{name: "failed - event missing", err: mailing.ErrEventNotFound, wantStatusCode: fiber.StatusNotFound},
		{name: "failed - template missing", err: fmt.Errorf("render: %w", generator.ErrTemplateNotFound), wantStatusCode: fiber.StatusNotFound},
		{name: "failed - smtp not configured", err: util.ErrSMTPNotConfigured, wantStatusCode: fiber.StatusInternalServerError},
		{name: "failed - smtp dial", err: errors.New("dial tcp: refused"), wantStatusCode: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mailer := &stubMailer{err: tt.err}
			ctrl := email_controller.NewEmailController(mailer, nil)
			app := fiber.New()
			app.Post("/email/send-certificate", ctrl.SendCertificate)

			status, response := post(t, app, "/email/send-certificate", body)
			assert.Equal(t, tt.wantStatusCode, status)
			assert.Equal(t, tt.err == nil, response["success"])
			require.NotNil(t, mailer.seen)
			assert.Equal(t, "Horvat", mailer.seen.LastName)
		})
	}
}

func TestEmailController_SendValidation(t *testing.T) {
	ctrl := email_controller.NewEmailController(&stubMailer{}, nil)
	app := fiber.New()
	app.Post("/email/send", ctrl.Send)
	app.Post("/email/send-qr", ctrl.SendQR)
	app.Post("/email/send-certificate-simple", ctrl.SendCertificateSimple)

	status, _ := post(t, app, "/email/send", `{"recipientEmail":"ana@example.com","emailType":"custom","eventId":1}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = post(t, app, "/email/send", `{"recipientEmail":"ana@example.com","eventId":1}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = post(t, app, "/email/send-qr", `{"attendee":{}}`)
	assert.Equal(t, fiber.StatusBadRequest, status, "eventId is required")

	status, _ = post(t, app, "/email/send-certificate-simple", `{"recipientEmail":"ana@example.com","eventId":1,"attendeeId":"`+firstID+`"}`)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = post(t, app, "/email/send-certificate-simple", `{"recipientEmail":"ana@example.com","eventId":1,"attendeeId":"7"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestEmailController_BatchInProcess(t *testing.T) {
	mailer := &stubMailer{batch: func(eventID int64, ids []string) []mailing.BatchResult {
		assert.Equal(t, int64(4), eventID)
		return []mailing.BatchResult{
			{AttendeeID: ids[0], Success: true},
			{AttendeeID: ids[1], Success: false, Error: "attendee not found"},
		}
	}}
	ctrl := email_controller.NewEmailController(mailer, nil)
	app := fiber.New()
	app.Post("/email/send-certificate/batch", ctrl.SendCertificateBatch)

	status, response := post(t, app, "/email/send-certificate/batch", `{"eventId":4,"attendeeIds":["`+firstID+`","`+secondID+`"]}`)
	require.Equal(t, fiber.StatusOK, status)

	data := response["data"].(map[string]any)
	assert.Equal(t, false, data["queued"])
	assert.Equal(t, float64(1), data["succeeded"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestEmailController_BatchQueued(t *testing.T) {
	mailer := &stubMailer{batch: func(int64, []string) []mailing.BatchResult {
		t.Error("in-process batch must not run when a queue is configured")
		return nil
	}}
	enqueuer := enqueuerFunc(func(_ context.Context, eventID int64, attendeeID string) (string, error) {
		if attendeeID == secondID {
			return "", errors.New("redis unavailable")
		}
		return "task-" + attendeeID[:8], nil
	})
	ctrl := email_controller.NewEmailController(mailer, enqueuer)
	app := fiber.New()
	app.Post("/email/send-certificate/batch", ctrl.SendCertificateBatch)

	status, response := post(t, app, "/email/send-certificate/batch", `{"eventId":4,"attendeeIds":["`+firstID+`","`+secondID+`"]}`)
	require.Equal(t, fiber.StatusOK, status)

	data := response["data"].(map[string]any)
	assert.Equal(t, true, data["queued"])
	results := data["results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, "task-5f0c3c7e", results[0].(map[string]any)["taskId"])
	assert.Equal(t, false, results[1].(map[string]any)["success"])

	status, _ = post(t, app, "/email/send-certificate/batch", `{"eventId":4,"attendeeIds":[]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
