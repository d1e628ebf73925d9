// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Failure classes. Every operation-level error returned by the API client or the
// listing controller matches exactly one of these with errors.Is.
var (
	// ErrTransport covers network errors, timeouts and unexpected HTTP statuses.
	ErrTransport = errors.New("transport failure")
	// ErrNotFound means the backend has no record for the requested id.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks input rejected on the client before any request is sent.
	ErrValidation = errors.New("validation failure")
	// ErrAuth means the credential is missing, expired or rejected.
	ErrAuth = errors.New("authentication failure")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// Messager is implemented by errors that carry a message safe to display.
type Messager interface {
	DisplayMessage() string
}

// Message returns the display message carried by err, or fallback when err carries
// none. A nil error yields an empty string.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var m Messager
	if errors.As(err, &m) {
		if msg := m.DisplayMessage(); msg != "" {
			return msg
		}
	}

	var userErr *UserError
	if errors.As(err, &userErr) && userErr.UserMessage != "" {
		return userErr.UserMessage
	}

	return fallback
}

// ValidationError is input rejected on the client. It matches ErrValidation and
// displays its reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Reason
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DisplayMessage returns the reason.
func (e *ValidationError) DisplayMessage() string {
	return e.Reason
}

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsAuth reports whether err should send the user back to the sign-in screen.
func IsAuth(err error) bool {
	return errors.Is(err, ErrAuth)
}
