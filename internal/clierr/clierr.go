// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripted consumers.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants: uppercase, underscore-separated, stable across minor versions.
const (
	TodoNotFound       = "TODO_NOT_FOUND"
	DataDirNotFound    = "DATA_DIR_NOT_FOUND"
	AlreadyInitialized = "ALREADY_INITIALIZED"
	InvalidInput       = "INVALID_INPUT"
	InvalidRef         = "INVALID_REF"
	AmbiguousRef       = "AMBIGUOUS_REF"
	UnknownAction      = "UNKNOWN_ACTION"
	MalformedAction    = "MALFORMED_ACTION"
	InvalidStatus      = "INVALID_STATUS"
	InvalidSort        = "INVALID_SORT"
	InvalidGroupBy     = "INVALID_GROUP_BY"
	InvalidConfig      = "INVALID_CONFIG"
	NoChanges          = "NO_CHANGES"
	ConfirmationReq    = "CONFIRMATION_REQUIRED"
	StorageError       = "STORAGE_ERROR"
	InternalError      = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error whose message is prefixed to err's.
func Wrap(code, message string, err error) *Error {
	return &Error{Code: code, Message: message + ": " + err.Error(), Err: err}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// As returns err as an *Error when one is in its chain.
func As(err error) (*Error, bool) {
	var ce *Error
	ok := errors.As(err, &ce)
	return ce, ok
}

// SilentError signals an exit code without additional output.
// Used by batch operations where results are already written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
