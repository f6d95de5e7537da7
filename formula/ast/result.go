// File: result.go
// Title: Evaluation Result Types
// Description: Defines the result shape returned by every evaluation and
//              the runtime error carried inside failed results. Results
//              always hold a displayable value: on failure the value is
//              the sentinel marker and the diagnostic travels separately,
//              so one bad cell never blocks rendering the rest of a table.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial implementation

package ast

import "fmt"

// ValueKind distinguishes numeric results from textual ones.
type ValueKind int

const (
	// KindNumber marks a result computed arithmetically; NumericValue
	// holds the unformatted float alongside the canonical string.
	KindNumber ValueKind = iota

	// KindString marks a textual result (string literal, concatenation,
	// or a bare field passed through).
	KindString
)

// String returns "number" or "string".
func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// EvalError is a runtime evaluation failure. It is carried inside
// EvaluationResult and never raised to the caller.
type EvalError struct {
	Code    Code
	Message string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return e.Message
}

// NewEvalError creates an EvalError with a formatted message.
func NewEvalError(code Code, format string, args ...interface{}) *EvalError {
	return &EvalError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// EvaluationResult is the outcome of evaluating one formula against one
// row. A fresh result is created per evaluation and never mutated after
// return.
type EvaluationResult struct {
	// Value is the displayable cell text. On failure it holds the
	// sentinel marker.
	Value string

	// Kind reports whether Value carries a formatted number or text.
	Kind ValueKind

	// NumericValue is the unformatted numeric result; meaningful only
	// when Kind is KindNumber and Err is nil.
	NumericValue float64

	// Err is the runtime diagnostic for failed evaluations, nil on
	// success. It is surfaced through a secondary channel (tooltip,
	// inspect output), never through Value.
	Err *EvalError
}

// OK reports whether the evaluation succeeded.
func (r *EvaluationResult) OK() bool {
	return r.Err == nil
}

// String renders the result for logs and the inspect command.
func (r *EvaluationResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s (%s: %s)", r.Value, r.Err.Code, r.Err.Message)
	}
	return fmt.Sprintf("%s (%s)", r.Value, r.Kind)
}
