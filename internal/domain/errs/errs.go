package errs

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal     Kind = "INTERNAL"
	KindUnauthorized Kind = "UNAUTHORIZED"
	KindForbidden    Kind = "FORBIDDEN"
	KindNotFound     Kind = "NOT_FOUND"
	KindConflict     Kind = "CONFLICT"
	KindBadRequest   Kind = "BAD_REQUEST"
)

// Error is a domain error that carries the category used by transports to pick a status code.
type Error struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

func BadRequestf(format string, args ...any) *Error {
	return Errorf(KindBadRequest, format, args...)
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Kind() Kind {
	return e.kind
}

func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.kind
	}
	return KindInternal
}

// Message returns the client-safe message of a domain error; internal errors are masked.
func Message(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.message
	}
	return "internal error"
}

func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

func IsConflict(err error) bool {
	return KindOf(err) == KindConflict
}

func IsForbidden(err error) bool {
	return KindOf(err) == KindForbidden
}

func IsBadRequest(err error) bool {
	return KindOf(err) == KindBadRequest
}
