// Package apperr defines the error kinds returned by services and the HTTP
// status each one maps to.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)

// Error carries a kind, a message safe to show to callers, optional field
// errors and the underlying cause.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Is matches the kind so callers can use errors.Is(err, apperr.ErrConflict).
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: message, Fields: fields}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// InvalidCredentials always carries the same message so callers cannot tell
// an unknown email from a wrong password.
func InvalidCredentials() *Error {
	return &Error{Kind: ErrInvalidCredentials, Message: "invalid credentials"}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: ErrUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

// Internal hides cause from the caller; the message is always generic.
func Internal(cause error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal server error", Cause: cause}
}

// HTTPStatus returns the status code for err. Unknown errors are 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be sent to a client.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && !errors.Is(appErr.Kind, ErrInternal) {
		return appErr.Message
	}
	return "internal server error"
}

// FieldErrors returns per-field validation messages, if any.
func FieldErrors(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
