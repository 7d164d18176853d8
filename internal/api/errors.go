package api

import (
	"errors"
	"net/http"

	"github.com/smazurov/openlogger/internal/logfile"
)

// ErrorResponse is the error envelope for log file operations: {code, error}.
type ErrorResponse struct {
	Status  int    `json:"code" example:"404" doc:"HTTP status code"`
	Message string `json:"error" example:"File not found." doc:"Error description"`
	Kind    string `json:"kind,omitempty" example:"NOT_FOUND" doc:"Log engine error code"`
	cause   error
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

func (e *ErrorResponse) Unwrap() error {
	return e.cause
}

// mapLogError maps log engine errors to HTTP errors.
func mapLogError(err error) error {
	var logErr *logfile.Error
	if !errors.As(err, &logErr) {
		return &ErrorResponse{Status: http.StatusInternalServerError, Message: "internal server error", cause: err}
	}

	status := http.StatusInternalServerError
	switch logErr.Code {
	case logfile.ErrCodeNotFound:
		status = http.StatusNotFound
	case logfile.ErrCodeEmptyFile, logfile.ErrCodeInvalidSeverity, logfile.ErrCodeValidationFailed:
		status = http.StatusUnprocessableEntity
	case logfile.ErrCodeWriteFailed:
		status = http.StatusBadRequest
	case logfile.ErrCodeOpenFailed, logfile.ErrCodeClosed:
		status = http.StatusInternalServerError
	}

	return &ErrorResponse{
		Status:  status,
		Message: logErr.Message,
		Kind:    logErr.Code,
		cause:   err,
	}
}
