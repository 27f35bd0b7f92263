package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
)

type CertificateMailer interface {
	SendCertificateTo(ctx context.Context, attendeeID string, eventID int64) (*mailing.Receipt, error)
}

// permanent reports failures a retry cannot fix.
func permanent(err error) bool {
	return errors.Is(err, mailing.ErrAttendeeNotFound) ||
		errors.Is(err, mailing.ErrEventNotFound) ||
		errors.Is(err, mailing.ErrTemplateDisabled) ||
		errors.Is(err, mailing.ErrIncompleteAttendee) ||
		errors.Is(err, util.ErrSMTPNotConfigured) ||
		generator.IsNotFound(err) ||
		renderer.KindOf(err) == renderer.KindInvalidInput
}

func HandleCertificateEmail(mailer CertificateMailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p CertificateEmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.AttendeeID == "" || p.EventID <= 0 {
			return fmt.Errorf("incomplete payload: %w", asynq.SkipRetry)
		}

		if _, err := mailer.SendCertificateTo(ctx, p.AttendeeID, p.EventID); err != nil {
			slog.Error("Queue HandleCertificateEmail", "error", err, "event_id", p.EventID, "attendee_id", p.AttendeeID)
			if permanent(err) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			return err
		}
		return nil
	}
}

type ServerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Concurrency int
	Mailer      CertificateMailer
	Middleware  []asynq.MiddlewareFunc
}

type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(cfg ServerConfig) *Server {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
	})

	mux := asynq.NewServeMux()
	mux.Use(cfg.Middleware...)
	mux.HandleFunc(TypeCertificateEmail, HandleCertificateEmail(cfg.Mailer))

	return &Server{server: srv, mux: mux}
}

// Run processes tasks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return nil
}
