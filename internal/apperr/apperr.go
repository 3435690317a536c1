// Package apperr defines the error kinds shared by the store controllers and the web handlers.
//
// A domain error is an *Error carrying one of the kind sentinels below and a message
// that is safe to show to API callers. errors.Is matches both the concrete error value
// and its kind.
package apperr

import "errors"

var (
	// ErrValidation marks missing, empty or malformed input.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a lookup that matched no row.
	ErrNotFound = errors.New("not found")
)

// Error is a classified error with a user facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}

	if e.Msg != "" {
		return e.Msg
	}

	if e.Kind != nil {
		return e.Kind.Error()
	}

	return "application error"
}

// Unwrap exposes the kind so errors.Is(err, ErrValidation) works.
func (e *Error) Unwrap() error { return e.Kind }

// New creates an error of the given kind.
func New(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error { return New(ErrValidation, msg) }

// Conflict creates a conflict error.
func Conflict(msg string) *Error { return New(ErrConflict, msg) }

// NotFound creates a not found error.
func NotFound(msg string) *Error { return New(ErrNotFound, msg) }

// Message returns the user facing message of the first *Error in the chain.
// The second return value is false when err is not classified.
func Message(err error) (string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Error(), true
	}

	return "", false
}
