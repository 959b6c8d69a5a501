// Package apierror provides the domain error taxonomy and the standardized
// error response structures for the API. All errors returned to clients go
// through this package to ensure consistency and to prevent leaking internal
// details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for HTTP mapping and for callers that need to
// branch on the failure class without string matching.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindInsufficientStock Kind = "insufficient_stock"
	KindNoOpenRegister    Kind = "no_open_register"
	KindConflict          Kind = "conflict"
	KindInternal          Kind = "internal"
)

// Error is the canonical domain error. Services return *Error for every
// expected failure; anything else surfacing from a repository is treated as
// KindInternal by the handlers.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string { return e.Detail }

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Detail: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newError(KindValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newError(KindNotFound, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return newError(KindInsufficientStock, format, args...)
}

func NoOpenRegister(format string, args ...interface{}) *Error {
	return newError(KindNoOpenRegister, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newError(KindConflict, format, args...)
}

func Internal(format string, args ...interface{}) *Error {
	return newError(KindInternal, format, args...)
}

// KindOf extracts the Kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool { return KindOf(err) == k }

// Status maps an error to its HTTP status code. Business rule violations
// (stock, caja) are 400, absent references 404, lost races 409.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindInsufficientStock, KindNoOpenRegister:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
