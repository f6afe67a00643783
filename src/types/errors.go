package types

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// ErrorKind is the closed set of outward error categories. Every failure a
// handler returns maps to exactly one kind, checked in the order
// Unauthenticated, Forbidden, Validation, NotFound, Inventory, Timeout,
// Internal.
type ErrorKind int

const (
	KindUnauthenticated ErrorKind = iota
	KindForbidden
	KindValidation
	KindNotFound
	KindInventory
	KindTimeout
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInventory:
		return "inventory"
	case KindTimeout:
		return "timeout"
	}
	return "internal"
}

type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err.Error())
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func E(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Ef(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf resolves any error to its outward kind. Unclassified errors are
// Internal: their detail never reaches the caller.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return KindNotFound
	}
	return KindInternal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInventory:
		return http.StatusConflict
	case KindTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// Message returns the caller-visible text. Internal failures stay opaque.
func Message(err error) string {
	if KindOf(err) == KindInternal {
		return "internal server error"
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "store operation timed out"
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "record not found"
	}
	return err.Error()
}
