// Package queue moves certificate emails onto asynq workers.
package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeCertificateEmail = "email:certificate"

	QueueDefault = "default"
)

type CertificateEmailPayload struct {
	EventID    int64  `json:"event_id"`
	AttendeeID string `json:"attendee_id"`
}

func NewCertificateEmailTask(eventID int64, attendeeID string) (*asynq.Task, error) {
	payload, err := json.Marshal(CertificateEmailPayload{EventID: eventID, AttendeeID: attendeeID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCertificateEmail, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(2*time.Minute),
	), nil
}
