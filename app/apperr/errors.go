// Package apperr defines the typed error results services hand back to the
// HTTP layer. Controllers translate codes to status codes; services never
// swallow these.
package apperr

import "net/http"

type AppError struct {
	Code    string
	Message string
	Origin  error // original error that caused this one, if any
}

func (e *AppError) Error() string {
	if e.Origin != nil {
		return e.Message + ": " + e.Origin.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Origin
}

// Standard error codes for the application
const (
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidInput    = "INVALID_INPUT"
	ErrUnauthenticated = "UNAUTHENTICATED"
	ErrForbidden       = "FORBIDDEN"
	ErrConflict        = "CONFLICT"
	ErrDuplicate       = "DUPLICATE"
	ErrInternal        = "INTERNAL"
)

func New(code, message string, origin error) *AppError {
	return &AppError{Code: code, Message: message, Origin: origin}
}

func NotFound(message string, origin error) *AppError {
	return &AppError{Code: ErrNotFound, Message: message, Origin: origin}
}

func Invalid(message string, origin error) *AppError {
	return &AppError{Code: ErrInvalidInput, Message: message, Origin: origin}
}

func Unauthenticated(message string) *AppError {
	return &AppError{Code: ErrUnauthenticated, Message: message}
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// HTTPStatus maps an error to the status code the API should respond with.
func HTTPStatus(err error) int {
	appErr, ok := err.(*AppError)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidInput:
		return http.StatusBadRequest
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict, ErrDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
