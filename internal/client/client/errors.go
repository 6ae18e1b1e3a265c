package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable       = errors.New("server unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUnsupportedMethod = errors.New("unsupported http method")
)

// DefaultErrorMessage is used when a failed response carries no usable message.
const DefaultErrorMessage = "request failed"

// ServiceError is a failure reported by the backend (non-2xx status) or
// produced locally in the same shape (the mock repository).
//
// Code is empty unless the backend (or the mock) supplied one; Status is 0
// for errors that did not come from an HTTP response.
type ServiceError struct {
	Message string
	Code    string
	Status  int
}

// NewServiceError builds a ServiceError without an HTTP status.
func NewServiceError(message, code string) *ServiceError {
	return &ServiceError{Message: message, Code: code}
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Is lets callers match authentication failures with errors.Is(err, ErrUnauthorized).
func (e *ServiceError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// CodeOf returns the structured code carried by err, if any.
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// MessageOf returns the user-facing message for err: the backend message
// for a ServiceError, err.Error() otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return err.Error()
}
