// Package errors provides structured error types and exit codes for testlogs.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Exit codes returned by the testlogs binary.
const (
	ExitSuccess      = 0 // Success
	ExitRuntimeError = 1 // Runtime error (write failure, publish failure, strict gate)
	ExitConfigError  = 2 // Configuration error (bad flags, invalid config, etc.)
)

// ErrorKind represents the type of error.
type ErrorKind int

const (
	KindRuntime ErrorKind = iota
	KindConfig
	KindNotFound
	KindValidation
	KindIO
)

// Error is the base error type for testlogs.
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string // File path if applicable
	Cause   error  // Underlying error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error.
func (e *Error) ExitCode() int {
	switch e.Kind {
	case KindConfig, KindValidation:
		return ExitConfigError
	default:
		return ExitRuntimeError
	}
}

// New creates a new runtime error.
func New(message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
	}
}

// Newf creates a new runtime error with formatting.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Config creates a new configuration error.
func Config(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
	}
}

// Configf creates a new configuration error with formatting.
func Configf(format string, args ...interface{}) *Error {
	return Config(fmt.Sprintf(format, args...))
}

// ConfigWrap wraps a cause as a configuration error.
func ConfigWrap(err error, message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Message: message,
		Cause:   err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) *Error {
	return &Error{
		Kind:    KindRuntime,
		Message: message,
		Cause:   err,
	}
}

// IO creates an error for a failed read or write of path.
func IO(path, message string, err error) *Error {
	return &Error{
		Kind:    KindIO,
		Message: message,
		Path:    path,
		Cause:   err,
	}
}

// NotFound creates a not found error.
func NotFound(what, name string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", what, name),
	}
}

// GetExitCode returns the exit code for an error.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.ExitCode()
	}
	return ExitRuntimeError
}
