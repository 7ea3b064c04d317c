package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable, client-facing category of an AppError.
type Kind string

const (
	KindNotFound         Kind = "NOT_FOUND"
	KindForbidden        Kind = "FORBIDDEN"
	KindNotAvailable     Kind = "NOT_AVAILABLE"
	KindInvalidDateRange Kind = "INVALID_DATE_RANGE"
	KindAlreadyApproved  Kind = "ALREADY_APPROVED"
	KindUnsupportedState Kind = "UNSUPPORTED_STATE"
	KindBlankField       Kind = "BLANK_FIELD"
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindConflict         Kind = "CONFLICT"
	KindUnauthorized     Kind = "UNAUTHORIZED"
	KindTooManyRequests  Kind = "TOO_MANY_REQUESTS"
	KindInternal         Kind = "INTERNAL"
)

// statusByKind maps each kind to the single HTTP status it is exposed with.
var statusByKind = map[Kind]int{
	KindNotFound:         http.StatusNotFound,
	KindForbidden:        http.StatusForbidden,
	KindNotAvailable:     http.StatusBadRequest,
	KindInvalidDateRange: http.StatusBadRequest,
	KindAlreadyApproved:  http.StatusBadRequest,
	KindUnsupportedState: http.StatusBadRequest,
	KindBlankField:       http.StatusBadRequest,
	KindInvalidInput:     http.StatusBadRequest,
	KindConflict:         http.StatusConflict,
	KindUnauthorized:     http.StatusUnauthorized,
	KindTooManyRequests:  http.StatusTooManyRequests,
	KindInternal:         http.StatusInternalServerError,
}

// AppError is a custom error type that includes an HTTP status code and a stable error kind.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Stable error category exposed to clients
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError of the same kind and message.
// Sentinels wrapped with Wrap still match their originals.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New creates a new AppError of the given kind. The status code is derived from the kind.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Code:    StatusOf(kind),
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Code:    StatusOf(kind),
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// StatusOf returns the HTTP status for a kind, 500 for unknown kinds.
func StatusOf(kind Kind) int {
	if code, ok := statusByKind[kind]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// KindOf returns the kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
