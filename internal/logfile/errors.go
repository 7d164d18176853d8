package logfile

import (
	"errors"
	"fmt"
)

// Error represents a log engine failure with a stable code.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error carrying the same code, so the Err* values below work
// as sentinels with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// Error codes
const (
	ErrCodeInvalidSeverity  = "INVALID_SEVERITY"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeOpenFailed       = "OPEN_FAILED"
	ErrCodeWriteFailed      = "WRITE_FAILED"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeEmptyFile        = "EMPTY_FILE"
	ErrCodeClosed           = "CLOSED"
)

// Sentinels for errors.Is. They carry no message so they match any error with
// the same code.
var (
	ErrInvalidSeverity  = &Error{Code: ErrCodeInvalidSeverity}
	ErrValidationFailed = &Error{Code: ErrCodeValidationFailed}
	ErrOpenFailed       = &Error{Code: ErrCodeOpenFailed}
	ErrWriteFailed      = &Error{Code: ErrCodeWriteFailed}
	ErrNotFound         = &Error{Code: ErrCodeNotFound}
	ErrEmptyFile        = &Error{Code: ErrCodeEmptyFile}
	ErrClosed           = &Error{Code: ErrCodeClosed}
)

// NewError creates a new log engine error.
func NewError(code, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Code returns the code of the first *Error in err's chain, or "" if none.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
