// Package apperr defines the error kinds shared by the ledger services.
//
// Every kind is a sentinel; constructors wrap it with a message so callers
// classify with errors.Is and still get a readable error string.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is a business-rule violation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the referenced record does not exist or belongs to someone else.
	ErrNotFound = errors.New("not found")
	// ErrConflict is a duplicate linkage attempt.
	ErrConflict = errors.New("conflict")
	// ErrUnexpected is an internal invariant violation.
	ErrUnexpected = errors.New("unexpected error")
)

func Validation(format string, args ...any) error {
	return wrap(ErrValidation, format, args...)
}

func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return wrap(ErrConflict, format, args...)
}

func Unexpected(format string, args ...any) error {
	return wrap(ErrUnexpected, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// Is reports whether err carries one of the known kinds.
func Is(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnexpected)
}
