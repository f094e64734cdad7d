package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	NotFound             ErrorCode = "NOT_FOUND"
	AlreadyExists        ErrorCode = "ALREADY_EXISTS"
	Unauthorized         ErrorCode = "UNAUTHORIZED"
	InsufficientFunds    ErrorCode = "INSUFFICIENT_FUNDS"
	InvalidState         ErrorCode = "INVALID_STATE"
	StaleReport          ErrorCode = "STALE_REPORT"
	CounterUnderflow     ErrorCode = "COUNTER_UNDERFLOW"
	CapacityExceeded     ErrorCode = "CAPACITY_EXCEEDED"
	BadRequest           ErrorCode = "BAD_REQUEST"
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
)

// Error carries the error code used to classify a failed operation together
// with the HTTP status it maps to on the API.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		Err:        err,
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return &Error{
		Err:        errors.New(msg),
		StatusCode: statusCode,
		ErrorCode:  errorCode,
	}
}

// NewInternalServiceError wraps an unexpected failure of a collaborator
func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// Errorf builds a protocol error with the status code derived from the error code
func Errorf(code ErrorCode, format string, args ...any) *Error {
	return NewError(StatusCodeFor(code), code, fmt.Errorf(format, args...))
}

func StatusCodeFor(code ErrorCode) int {
	switch code {
	case NotFound:
		return http.StatusNotFound
	case AlreadyExists:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusForbidden
	case InsufficientFunds, InvalidState, StaleReport, CapacityExceeded:
		return http.StatusUnprocessableEntity
	case BadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsErrorCode reports whether err is a *Error carrying the given code
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.ErrorCode == code
}
