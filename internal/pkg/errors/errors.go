// Package errors provides the structured error type used across purl-migrate.
//
// Every failure that aborts a migration is an *AppError carrying a machine
// code, a human-readable message and, when the failure is tied to one
// <purl> record, its 1-based index in the source document.
//
// Import Path: purl-migrate.io/migrator/internal/pkg/errors
package errors

import (
	"errors"
	"fmt"
)

// AppError is a structured application error with an error code.
type AppError struct {
	// Code is a machine-readable error code (e.g., "PREFIX_MISMATCH").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Record is the 1-based index of the offending <purl> record, 0 if none.
	Record int `json:"record,omitempty"`

	// Params carries structured context for logging.
	Params map[string]interface{} `json:"params,omitempty"`

	// Err is the wrapped underlying error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel registered for e.Code.
func (e *AppError) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && sentinel == target
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error into an AppError.
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithRecord attaches the 1-based record index to the error.
func (e *AppError) WithRecord(index int) *AppError {
	if e == nil {
		return e
	}
	e.Record = index
	return e
}

// WithParams attaches structured parameters to the error.
func (e *AppError) WithParams(params map[string]interface{}) *AppError {
	if e == nil || len(params) == 0 {
		return e
	}
	e.Params = params
	return e
}

// IsAppError checks if an error is an AppError and returns it.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Exit codes returned by the CLI.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitSource     = 3
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	appErr, ok := IsAppError(err)
	if !ok {
		return ExitFailure
	}
	switch appErr.Code {
	case CodeEmptyField, CodeMissingField, CodePrefixMismatch,
		CodeInvalidURL, CodeUnknownType, CodeNoEntries, CodeInvalidDocument,
		CodeInvalidIdspace:
		return ExitValidation
	case CodeMalformedSource:
		return ExitSource
	default:
		return ExitFailure
	}
}
