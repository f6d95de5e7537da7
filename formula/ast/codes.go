// File: codes.go
// Title: Formula Error Codes
// Description: Defines the error-code vocabulary shared by the compiler,
//              the evaluator, and the table layer. Compile-time codes are
//              returned as errors from compilation; runtime codes are
//              caught inside evaluation and surface only through the
//              sentinel result.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial code definitions

package ast

// Code classifies a formula failure.
type Code string

const (
	// Compile-time codes. A formula that fails with one of these never
	// produces a CompiledFormula.

	// CodeEmptyFormula: the source is empty after stripping "=".
	CodeEmptyFormula Code = "EMPTY_FORMULA"

	// CodeUnexpectedChar: a character outside the formula grammar.
	CodeUnexpectedChar Code = "UNEXPECTED_CHAR"

	// CodeUnmatchedBrace: a {field reference without its closing brace.
	CodeUnmatchedBrace Code = "UNMATCHED_BRACE"

	// CodeEmptyField: a {} reference whose name trims to nothing.
	CodeEmptyField Code = "EMPTY_FIELD"

	// CodeUnmatchedParen: parentheses that do not pair up.
	CodeUnmatchedParen Code = "UNMATCHED_PAREN"

	// CodeNumericOutOfRange: a numeric literal outside float64 range.
	CodeNumericOutOfRange Code = "NUMERIC_OUT_OF_RANGE"

	// CodeUnaryNotSupported: * or / in unary position.
	CodeUnaryNotSupported Code = "UNARY_NOT_SUPPORTED"

	// CodeUnterminatedString: a string literal without its closing quote.
	CodeUnterminatedString Code = "UNTERMINATED_STRING"

	// Runtime codes. Caught inside evaluation and reported through the
	// sentinel result; evaluation never returns an error to the caller.

	// CodeStackUnderflow: the RPN sequence did not reduce to one value.
	CodeStackUnderflow Code = "STACK_UNDERFLOW"

	// CodeDivideByZero: division by a near-zero divisor.
	CodeDivideByZero Code = "DIVIDE_BY_ZERO"

	// CodeNonFiniteResult: the final numeric value is NaN or infinite.
	CodeNonFiniteResult Code = "NON_FINITE_RESULT"

	// Table-layer codes, synthesized by the calculator without invoking
	// the engine.

	// CodeSelfReference: a column's formula references its own column.
	CodeSelfReference Code = "SELF_REFERENCE"
)

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// IsCompileTime reports whether the code is produced during compilation.
func (c Code) IsCompileTime() bool {
	switch c {
	case CodeEmptyFormula, CodeUnexpectedChar, CodeUnmatchedBrace,
		CodeEmptyField, CodeUnmatchedParen, CodeNumericOutOfRange,
		CodeUnaryNotSupported, CodeUnterminatedString:
		return true
	}
	return false
}

// IsRuntime reports whether the code is produced during evaluation.
func (c Code) IsRuntime() bool {
	switch c {
	case CodeStackUnderflow, CodeDivideByZero, CodeNonFiniteResult:
		return true
	}
	return false
}

// Category groups codes by the phase that produces them.
func (c Code) Category() string {
	switch {
	case c.IsCompileTime():
		return "compile"
	case c.IsRuntime():
		return "runtime"
	case c == CodeSelfReference:
		return "table"
	default:
		return "unknown"
	}
}
