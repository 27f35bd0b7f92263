package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
)

type mailerFunc func(ctx context.Context, attendeeID string, eventID int64) (*mailing.Receipt, error)

func (f mailerFunc) SendCertificateTo(ctx context.Context, attendeeID string, eventID int64) (*mailing.Receipt, error) {
	return f(ctx, attendeeID, eventID)
}

func TestNewCertificateEmailTask(t *testing.T) {
	task, err := NewCertificateEmailTask(4, "att-1")
	require.NoError(t, err)
	assert.Equal(t, TypeCertificateEmail, task.Type())

	var p CertificateEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, CertificateEmailPayload{EventID: 4, AttendeeID: "att-1"}, p)
}

func TestHandleCertificateEmail(t *testing.T) {
	validTask, err := NewCertificateEmailTask(4, "att-1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		task      *asynq.Task
		mailErr   error
		wantErr   bool
		wantSkip  bool
		wantCalls int
	}{
		{name: "sends", task: validTask, wantCalls: 1},
		{name: "bad payload", task: asynq.NewTask(TypeCertificateEmail, []byte("{")), wantErr: true, wantSkip: true},
		{name: "missing attendee id", task: asynq.NewTask(TypeCertificateEmail, []byte(`{"event_id":4}`)), wantErr: true, wantSkip: true},
		{name: "attendee gone", task: validTask, mailErr: mailing.ErrAttendeeNotFound, wantErr: true, wantSkip: true, wantCalls: 1},
		{name: "smtp down is retried", task: validTask, mailErr: errors.New("dial tcp: timeout"), wantErr: true, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			handler := HandleCertificateEmail(mailerFunc(func(_ context.Context, attendeeID string, eventID int64) (*mailing.Receipt, error) {
				calls++
				assert.Equal(t, "att-1", attendeeID)
				assert.Equal(t, int64(4), eventID)
				return &mailing.Receipt{}, tt.mailErr
			}))

			err := handler(context.Background(), tt.task)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantSkip, errors.Is(err, asynq.SkipRetry))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}
