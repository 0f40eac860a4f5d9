// Package errors defines the domain errors returned by services and
// rendered by handlers.
package errors

import (
	"errors"
	"net/http"
)

// DomainError carries the HTTP status and a stable code with its message.
type DomainError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"detail"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped copies compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(status int, code, message string) *DomainError {
	return &DomainError{Status: status, Code: code, Message: message}
}

func BadRequest(message string) *DomainError {
	return New(http.StatusBadRequest, "BAD_REQUEST", message)
}

func Forbidden(message string) *DomainError {
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(message string) *DomainError {
	return New(http.StatusNotFound, "NOT_FOUND", message)
}

func Unprocessable(message string) *DomainError {
	return New(http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY", message)
}

func Unauthorized(message string) *DomainError {
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

// As extracts a *DomainError from err.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
