package renderer

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindNotFound
	KindRenderFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindNotFound:
		return "not found"
	case KindRenderFailure:
		return "render failure"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidInput  = errors.New("renderer: invalid input")
	ErrNotFound      = errors.New("renderer: template file not found")
	ErrRenderFailure = errors.New("renderer: render failure")
)

// Error carries the failure kind and the operation that produced it.
// The underlying cause is kept for logging.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrRenderFailure:
		return e.Kind == KindRenderFailure
	}
	return false
}

func invalidInput(op, format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Op: op, Err: fmt.Errorf(format, args...)}
}

func notFound(op string, err error) error {
	return &Error{Kind: KindNotFound, Op: op, Err: err}
}

func renderFailure(op string, err error) error {
	return &Error{Kind: KindRenderFailure, Op: op, Err: err}
}

// KindOf reports the kind of a renderer error, or zero when err did not come from the renderer.
func KindOf(err error) Kind {
	var rerr *Error
	if errors.As(err, &rerr) {
		return rerr.Kind
	}
	return 0
}
