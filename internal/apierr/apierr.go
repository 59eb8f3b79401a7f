package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeGuardRejected = "guard_rejected"
	CodeForbidden     = "forbidden"
	CodeNotFound      = "not_found"
	CodeInvalidInput  = "invalid_input"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// GuardRejected is a rejected write: the domain rule failed and no state
// changed.
func GuardRejected(err error) *Error {
	return New(http.StatusConflict, CodeGuardRejected, err)
}

func Forbidden(err error) *Error {
	return New(http.StatusForbidden, CodeForbidden, err)
}

func NotFound(err error) *Error {
	return New(http.StatusNotFound, CodeNotFound, err)
}

func InvalidInput(err error) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, err)
}

// From extracts the typed error if err carries one.
func From(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
