// File: codes.go
// Title: Error Code Definitions
// Description: Defines the machine-readable error codes used across the
//              engine's operational boundaries. Codes are stable strings so
//              they survive serialization into logs and JSON output.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-05
// Modified: 2026-08-05
//
// Change History:
// - 2026-08-05 v0.1.0: Initial implementation

package error

// Code represents a machine-readable error classification.
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Configuration
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Formula engine boundaries
	CodeFormulaCompile Code = "FORMULA_COMPILE"
	CodeFormulaRuntime Code = "FORMULA_RUNTIME"
	CodeTableInvalid   Code = "TABLE_INVALID"
)

// String returns the code as a string.
func (c Code) String() string {
	return string(c)
}

// IsValid reports whether the code is one of the defined constants.
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeFormulaCompile, CodeFormulaRuntime, CodeTableInvalid:
		return true
	}
	return false
}

// Category groups codes for logging and reporting.
func (c Code) Category() string {
	switch c {
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "config"
	case CodeFormulaCompile, CodeFormulaRuntime, CodeTableInvalid:
		return "formula"
	default:
		return "general"
	}
}
