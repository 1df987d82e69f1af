// Package apperror defines the error taxonomy shared by services and
// handlers. Services return these; the HTTP layer maps them to status codes.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication failed")
)

// AppError carries a sentinel plus a human-readable message and, for
// validation failures, the offending field.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record. Unowned ids go through this same
// constructor so ownership never leaks via a distinct error class.
func NotFound(resource string, id uint) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s with id %d not found", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(field, message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
		Field:   field,
	}
}

// Unauthenticated reports a credential or token failure. The message is
// deliberately uniform so callers cannot probe which part was wrong.
func Unauthenticated(message string) *AppError {
	return &AppError{
		Err:     ErrAuthentication,
		Message: message,
	}
}
