// Package common contains the sentinel errors shared across TaskKeeper
// components and a helper to attach user-facing messages to them.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// auth-specific errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// messageError pairs one of the sentinels above with a message that is safe
// to return to the client. Unwrap keeps errors.Is working against the sentinel.
type messageError struct {
	kind error
	msg  string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.kind }

// WithMessage returns an error that matches kind via errors.Is and renders
// msg via Error(). kind must be one of the package sentinels.
func WithMessage(kind error, msg string) error {
	return &messageError{kind: kind, msg: msg}
}

// UserMessage extracts a client-safe message from err, or "" if err carries
// none. ErrorInternal never carries a message; callers substitute a generic one.
func UserMessage(err error) string {
	var me *messageError
	if errors.As(err, &me) {
		return me.msg
	}
	return ""
}
