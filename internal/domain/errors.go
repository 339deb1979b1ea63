package domain

import (
	"errors"
	"fmt"
)

// ErrCode is the stable machine-readable code clients see in error bodies.
// The HTTP layer maps each code to a status; anything else is a 500.
type ErrCode string

const (
	CodeValidation   ErrCode = "validation_error" // 400
	CodeNotFound     ErrCode = "not_found"        // 404
	CodeForbidden    ErrCode = "forbidden"        // 403
	CodeInvalidState ErrCode = "invalid_state"    // 409
)

// AppError is an expected failure of an event operation. Message is safe to
// show to callers; Meta carries per-field detail such as {"when": "bad"}.
type AppError struct {
	Code    ErrCode
	Message string
	Meta    map[string]string
}

func (e *AppError) Error() string {
	if len(e.Meta) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Meta)
}

// AsAppError unwraps err to its AppError, if any.
func AsAppError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsCode reports whether err wraps an AppError with the given code.
func IsCode(err error, code ErrCode) bool {
	ae, ok := AsAppError(err)
	return ok && ae.Code == code
}

func ErrValidation(msg string) error { return &AppError{Code: CodeValidation, Message: msg} }

// ErrValidationMeta is ErrValidation with field-level detail.
func ErrValidationMeta(msg string, meta map[string]string) error {
	return &AppError{Code: CodeValidation, Message: msg, Meta: meta}
}

func ErrNotFound(msg string) error     { return &AppError{Code: CodeNotFound, Message: msg} }
func ErrForbidden(msg string) error    { return &AppError{Code: CodeForbidden, Message: msg} }
func ErrInvalidState(msg string) error { return &AppError{Code: CodeInvalidState, Message: msg} }
