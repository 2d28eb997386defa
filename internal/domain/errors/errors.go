package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrValidation      = errors.New("invalid input")
	ErrAlreadyReviewed = errors.New("application already reviewed")
	ErrExpired         = errors.New("code expired")
	ErrTooManyAttempts = errors.New("too many attempts")
	ErrCodeMismatch    = errors.New("code mismatch")
)

// AppError represents an application error with an HTTP status
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", message, ErrValidation)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "ALREADY_REVIEWED", message, ErrAlreadyReviewed)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}

// FromDomain maps a domain sentinel error to an AppError with the matching HTTP status.
func FromDomain(err error) *AppError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewAppError(http.StatusNotFound, "NOT_FOUND", err.Error(), err)
	case errors.Is(err, ErrValidation):
		return NewAppError(http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), err)
	case errors.Is(err, ErrAlreadyReviewed):
		return NewAppError(http.StatusConflict, "ALREADY_REVIEWED", err.Error(), err)
	case errors.Is(err, ErrExpired):
		return NewAppError(http.StatusGone, "OTP_EXPIRED", err.Error(), err)
	case errors.Is(err, ErrTooManyAttempts):
		return NewAppError(http.StatusTooManyRequests, "OTP_TOO_MANY_ATTEMPTS", err.Error(), err)
	case errors.Is(err, ErrCodeMismatch):
		return NewAppError(http.StatusBadRequest, "OTP_MISMATCH", err.Error(), err)
	case errors.Is(err, ErrAlreadyExists):
		return NewAppError(http.StatusConflict, "ALREADY_EXISTS", err.Error(), err)
	default:
		return InternalError(err)
	}
}
