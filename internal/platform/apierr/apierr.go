package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation       = "validation_error"
	CodeMissingID        = "missing_id"
	CodeInvalidID        = "invalid_id"
	CodeMissingParameter = "missing_parameter"
	CodeInvalidParameter = "invalid_parameter"
	CodeForbidden        = "forbidden"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeStore            = "store_error"
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

func Validation(msg string) *Error {
	return New(http.StatusBadRequest, CodeValidation, errors.New(msg))
}

func MissingID(msg string) *Error {
	return New(http.StatusBadRequest, CodeMissingID, errors.New(msg))
}

func InvalidID(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, errors.New(msg))
}

func MissingParameter(msg string) *Error {
	return New(http.StatusBadRequest, CodeMissingParameter, errors.New(msg))
}

func InvalidParameter(msg string) *Error {
	return New(http.StatusBadRequest, CodeInvalidParameter, errors.New(msg))
}

// Forbidden keeps the 401 status clients of the contact API already rely on.
func Forbidden(msg string) *Error {
	return New(http.StatusUnauthorized, CodeForbidden, errors.New(msg))
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, errors.New(msg))
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, CodeNotFound, errors.New(msg))
}

func Conflict(msg string) *Error {
	return New(http.StatusConflict, CodeConflict, errors.New(msg))
}

// Store wraps a persistence failure. The wrapped error is kept for logs only.
func Store(op string, err error) *Error {
	return New(http.StatusInternalServerError, CodeStore, fmt.Errorf("%s: %w", op, err))
}

// From returns the *Error carried by err, or a store error for anything else.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, CodeStore, err)
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
