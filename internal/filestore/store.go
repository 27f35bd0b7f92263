// Package filestore keeps uploaded certificate templates and id cards, either on
// local disk or in a MinIO bucket.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrNotFound matches fs.ErrNotExist and ErrInvalidName matches fs.ErrInvalid
	// so callers outside this package can tell them apart without importing it.
	ErrNotFound    = fs.ErrNotExist
	ErrInvalidName = fmt.Errorf("filestore: invalid file name: %w", fs.ErrInvalid)
)

type Object struct {
	Name        string    `json:"filename"`
	Size        int64     `json:"size"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	ContentType string    `json:"contentType,omitempty"`
}

type Store interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Stat(ctx context.Context, name string) (Object, error)
	// List returns every stored object, newest first.
	List(ctx context.Context) ([]Object, error)
	Delete(ctx context.Context, name string) error
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9_.-] with '_'.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// StoredName builds the name an upload is saved under.
func StoredName(now time.Time, original string) string {
	return fmt.Sprintf("%d_%s", now.UnixMilli(), SanitizeFilename(original))
}

// ValidateName rejects empty names and anything that could escape the store root.
func ValidateName(name string) error {
	if name == "" || name == "." || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func notFound(name string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return fmt.Errorf("%s: %w (%v)", name, ErrNotFound, cause)
}

// Fallback reads from primary and, for files it does not have, from secondary.
// Writes and deletes only touch primary.
type Fallback struct {
	Store
	Secondary Store
}

func (f Fallback) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := f.Store.Open(ctx, name)
	if err == nil || !errors.Is(err, ErrNotFound) || f.Secondary == nil {
		return rc, err
	}
	return f.Secondary.Open(ctx, name)
}

func (f Fallback) Stat(ctx context.Context, name string) (Object, error) {
	obj, err := f.Store.Stat(ctx, name)
	if err == nil || !errors.Is(err, ErrNotFound) || f.Secondary == nil {
		return obj, err
	}
	return f.Secondary.Stat(ctx, name)
}
