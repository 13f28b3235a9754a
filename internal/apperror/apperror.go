// Package apperror defines the error taxonomy shared by the services and the
// boundary layers. Every service failure a caller can recover from is an *Error
// with a Kind; anything else is treated as internal.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

const (
	// Internal is an unexpected failure (store errors, bugs)
	Internal Kind = iota
	// Unauthenticated means no verified identity where one is required
	Unauthenticated
	// Forbidden means the identity is known but does not own the resource
	Forbidden
	// NotFound means a referenced user, project or task does not exist
	NotFound
	// Conflict means the resource already exists (duplicate username)
	Conflict
	// Validation means the input failed a validation rule
	Validation
)

func (k Kind) String() string {
	switch k {
	case Unauthenticated:
		return "UNAUTHENTICATED"
	case Forbidden:
		return "FORBIDDEN"
	case NotFound:
		return "NOT_FOUND"
	case Conflict:
		return "CONFLICT"
	case Validation:
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error carries a kind, a human-readable message naming the offending
// identifier, and optionally the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause so errors.Is can match service sentinels
func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode maps the kind to an HTTP status
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New creates an *Error of the given kind
func New(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NewUnauthenticated creates an Unauthenticated error
func NewUnauthenticated(err error, format string, args ...any) *Error {
	return New(Unauthenticated, err, format, args...)
}

// NewForbidden creates a Forbidden error
func NewForbidden(err error, format string, args ...any) *Error {
	return New(Forbidden, err, format, args...)
}

// NewNotFound creates a NotFound error
func NewNotFound(err error, format string, args ...any) *Error {
	return New(NotFound, err, format, args...)
}

// NewConflict creates a Conflict error
func NewConflict(err error, format string, args ...any) *Error {
	return New(Conflict, err, format, args...)
}

// NewValidation wraps a validation sentinel, reusing its text as the message
func NewValidation(err error) *Error {
	return &Error{Kind: Validation, Message: err.Error(), Err: err}
}

// As extracts the *Error from err's chain
func As(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Internal when err is not an *Error
func KindOf(err error) Kind {
	if ae, ok := As(err); ok {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ErrorResponse is the JSON body written for failed requests
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ToResponse converts err into a response body, hiding internal details
func ToResponse(err error) (int, ErrorResponse) {
	ae, ok := As(err)
	if !ok || ae.Kind == Internal {
		return http.StatusInternalServerError, ErrorResponse{
			Error: "an unexpected error occurred",
			Code:  Internal.String(),
		}
	}
	return ae.StatusCode(), ErrorResponse{Error: ae.Message, Code: ae.Kind.String()}
}
