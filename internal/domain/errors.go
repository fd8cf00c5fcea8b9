package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrInvalidName       = errors.New("invalid profile name")
	ErrNameCollision     = errors.New("profile already exists")
	ErrNotFound          = errors.New("not found")
	ErrProfileNotFound   = fmt.Errorf("profile %w", ErrNotFound)
	ErrNoActiveProfile   = errors.New("no active profile")
	ErrIOFailure         = errors.New("i/o failure")
	ErrGameDirNotSet     = errors.New("game directory not set")
	ErrInvalidGameDir    = errors.New("invalid game directory")
)

// IOError is a failed copy, delete, read or write on a single path.
// It matches both ErrIOFailure and the underlying cause with errors.Is.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// NewIOError wraps err as an IOError, returning nil when err is nil
func NewIOError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() []error {
	return []error{ErrIOFailure, e.Err}
}
