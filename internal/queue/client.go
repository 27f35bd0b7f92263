package queue

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Enqueuer hands certificate emails to the workers and returns the task id.
type Enqueuer interface {
	EnqueueCertificateEmail(ctx context.Context, eventID int64, attendeeID string) (string, error)
}

type Client struct {
	client *asynq.Client
}

func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

func (c *Client) EnqueueCertificateEmail(ctx context.Context, eventID int64, attendeeID string) (string, error) {
	task, err := NewCertificateEmailTask(eventID, attendeeID)
	if err != nil {
		return "", err
	}
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		slog.Error("Queue EnqueueCertificateEmail", "error", err, "event_id", eventID, "attendee_id", attendeeID)
		return "", err
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
