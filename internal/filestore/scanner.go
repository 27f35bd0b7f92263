package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dutchcoders/go-clamd"
)

var ErrInfected = errors.New("filestore: malicious file detected")

// Scanner checks uploads before they are stored.
type Scanner interface {
	Scan(ctx context.Context, r io.Reader) error
}

type NopScanner struct{}

func (NopScanner) Scan(context.Context, io.Reader) error { return nil }

type ClamdScanner struct {
	client *clamd.Clamd
}

func NewClamdScanner(address string) *ClamdScanner {
	return &ClamdScanner{client: clamd.NewClamd(address)}
}

func (s *ClamdScanner) Ping() error {
	return s.client.Ping()
}

func (s *ClamdScanner) Scan(ctx context.Context, r io.Reader) error {
	abort := make(chan bool)
	defer close(abort)

	results, err := s.client.ScanStream(r, abort)
	if err != nil {
		return fmt.Errorf("scan stream: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-results:
			if !ok {
				return nil
			}
			switch result.Status {
			case clamd.RES_OK:
			case clamd.RES_FOUND:
				return fmt.Errorf("%w: %s", ErrInfected, result.Description)
			default:
				return fmt.Errorf("scan failed: %s", result.Raw)
			}
		}
	}
}
