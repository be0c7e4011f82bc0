// Package apperr defines the application error taxonomy.
// Storage-facing components return these sentinels (usually wrapped in an
// *Error) so callers can classify failures with errors.Is without caring
// which layer produced them.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a draft or session reference no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrCorruptData indicates a persisted file could not be read or parsed.
	ErrCorruptData = errors.New("corrupt data")

	// ErrStorageFault indicates an I/O failure (disk full, permission denied).
	ErrStorageFault = errors.New("storage fault")

	// ErrInvalidInput indicates a caller-supplied value was rejected
	// (e.g., renaming a draft to an empty title).
	ErrInvalidInput = errors.New("invalid input")
)

// Error wraps a taxonomy sentinel with the operation and target that failed.
type Error struct {
	Op     string // operation name (e.g., "draft.load", "flow.append")
	Target string // target of the operation (draft id, file path)
	Err    error  // underlying error; should wrap a taxonomy sentinel
}

// New creates an Error wrapping the given underlying error.
func New(op, target string, err error) *Error {
	return &Error{Op: op, Target: target, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Target != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NotFound reports whether err is classified as ErrNotFound.
func NotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// CorruptData reports whether err is classified as ErrCorruptData.
func CorruptData(err error) bool { return errors.Is(err, ErrCorruptData) }

// StorageFault reports whether err is classified as ErrStorageFault.
func StorageFault(err error) bool { return errors.Is(err, ErrStorageFault) }

// InvalidInput reports whether err is classified as ErrInvalidInput.
func InvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
