package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so handlers can translate it into an HTTP status
// without inspecting error strings.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthMissing
	KindAuthInvalid
	KindConflict
	KindNotFound
)

type Error struct {
	Kind    Kind
	Message string
	// Field names the offending request field on registration conflicts
	// (rut, email, telefono) so the client can highlight it.
	Field string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func Conflict(message, field string) *Error {
	return &Error{Kind: KindConflict, Message: message, Field: field}
}

// KindOf walks the wrap chain looking for an *Error; anything else is Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}

// Status maps a classified error to the HTTP status the original API used:
// conflicts come back as 400 with a field, missing credentials as 403,
// invalid credentials as 401.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindAuthMissing:
		return http.StatusForbidden
	case KindAuthInvalid:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
