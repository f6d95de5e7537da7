// File: error.go
// Title: Structured Error Type
// Description: Implements the structured error used at the operational
//              boundaries of the formula engine (input validation, config
//              loading, CLI). Errors carry a machine-readable code, a
//              severity, the failing operation, and free-form details while
//              remaining compatible with errors.Is/As unwrapping.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-05
// Modified: 2026-08-05
//
// Change History:
// - 2026-08-05 v0.1.0: Initial implementation

package error

import (
	"errors"
	"fmt"
	"time"
)

// Error is a structured error with code, severity, and context information.
// The zero value is not useful; construct instances via New or Wrap.
type Error struct {
	message   string
	cause     error
	code      Code
	severity  Severity
	operation string
	details   map[string]interface{}
	timestamp time.Time
}

// New creates a new structured error with the given message.
// Code defaults to CodeUnknown and severity to SeverityMedium.
func New(message string) *Error {
	return &Error{
		message:   message,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
	}
}

// Newf creates a new structured error with a formatted message.
func Newf(format string, args ...interface{}) *Error {
	return New(fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with an additional message. If the wrapped
// error is itself a *Error, its code and severity are inherited so that
// classification survives wrapping.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		message:   message,
		cause:     err,
		code:      CodeUnknown,
		severity:  SeverityMedium,
		timestamp: time.Now(),
	}

	var inner *Error
	if errors.As(err, &inner) {
		wrapped.code = inner.code
		wrapped.severity = inner.severity
	}

	return wrapped
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.message, e.cause.Error())
	}
	return e.message
}

// Unwrap returns the wrapped cause, enabling errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// WithCode sets the error code and returns the error for chaining.
func (e *Error) WithCode(code Code) *Error {
	e.code = code
	e.severity = GetSeverityFromCode(code)
	return e
}

// WithSeverity overrides the severity derived from the code.
func (e *Error) WithSeverity(severity Severity) *Error {
	e.severity = severity
	return e
}

// WithOperation records the logical operation that failed.
func (e *Error) WithOperation(operation string) *Error {
	e.operation = operation
	return e
}

// WithDetail attaches a key/value pair to the error.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.details == nil {
		e.details = make(map[string]interface{})
	}
	e.details[key] = value
	return e
}

// Code returns the error code.
func (e *Error) Code() Code {
	return e.code
}

// Severity returns the error severity.
func (e *Error) Severity() Severity {
	return e.severity
}

// Operation returns the recorded operation, if any.
func (e *Error) Operation() string {
	return e.operation
}

// Details returns a copy of the attached details.
func (e *Error) Details() map[string]interface{} {
	if e.details == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(e.details))
	for k, v := range e.details {
		copied[k] = v
	}
	return copied
}

// Timestamp returns the creation time of the error.
func (e *Error) Timestamp() time.Time {
	return e.timestamp
}

// RootCause walks the cause chain and returns the innermost error.
func (e *Error) RootCause() error {
	var current error = e
	for {
		unwrapped := errors.Unwrap(current)
		if unwrapped == nil {
			return current
		}
		current = unwrapped
	}
}

// String returns a verbose single-line representation for diagnostics.
func (e *Error) String() string {
	s := fmt.Sprintf("[%s/%s]", e.code, e.severity)
	if e.operation != "" {
		s += " " + e.operation + ":"
	}
	s += " " + e.Error()
	return s
}

// HasCode reports whether err or any error in its chain carries the code.
func HasCode(err error, code Code) bool {
	var structured *Error
	for errors.As(err, &structured) {
		if structured.code == code {
			return true
		}
		err = structured.Unwrap()
		if err == nil {
			return false
		}
	}
	return false
}

// GetCode extracts the code from an error chain, or CodeUnknown if no
// structured error is present.
func GetCode(err error) Code {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.code
	}
	return CodeUnknown
}

// GetSeverity extracts the severity from an error chain, or SeverityMedium
// if no structured error is present.
func GetSeverity(err error) Severity {
	var structured *Error
	if errors.As(err, &structured) {
		return structured.severity
	}
	return SeverityMedium
}
