package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/thisispriyanshii/edviron-frontend/internal/common"
)

// Error is a failed backend call. Kind is one of the common failure sentinels,
// so callers branch with errors.Is(err, common.ErrNotFound) and friends.
type Error struct {
	Kind       error
	Err        error
	Op         string
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the failure class.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// DisplayMessage returns the server-supplied message, if any.
func (e *Error) DisplayMessage() string {
	return e.Message
}

// errorBody is the NestJS error envelope; message is a string or a list of
// validation messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func extractMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Message) == 0 {
		return ""
	}

	var single string
	if err := json.Unmarshal(eb.Message, &single); err == nil {
		return single
	}

	var many []string
	if err := json.Unmarshal(eb.Message, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

// kindForStatus classifies a non-2xx response.
func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusUnauthorized:
		return common.ErrAuth
	default:
		return common.ErrTransport
	}
}

func statusError(op string, status int, body []byte) *Error {
	return &Error{
		Op:         op,
		Kind:       kindForStatus(status),
		StatusCode: status,
		Message:    extractMessage(body),
	}
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Kind: common.ErrTransport, Err: err}
}

func validationError(op, message string) *Error {
	return &Error{Op: op, Kind: common.ErrValidation, Message: message}
}

// IsTimeout reports whether err is a transport failure caused by a deadline.
func IsTimeout(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != common.ErrTransport || apiErr.Err == nil {
		return false
	}
	var te interface{ Timeout() bool }
	if errors.As(apiErr.Err, &te) && te.Timeout() {
		return true
	}
	return strings.Contains(apiErr.Err.Error(), "deadline exceeded")
}
