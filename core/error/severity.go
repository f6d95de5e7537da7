// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for structured errors so that the
//              logging layer can choose an appropriate log level and
//              tooling can decide what to surface to the user.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-05
// Modified: 2026-08-05
//
// Change History:
// - 2026-08-05 v0.1.0: Initial implementation

package error

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityLow indicates a minor error that does not affect core
	// functionality (a single bad formula, a missing optional setting).
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but
	// has a workaround.
	SeverityMedium

	// SeverityHigh indicates a serious error that significantly impacts
	// functionality.
	SeverityHigh

	// SeverityCritical indicates an error that makes the component
	// unusable.
	SeverityCritical
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode derives a default severity for a code. WithSeverity
// can still override the result on individual errors.
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInvalidInput, CodeFormulaCompile, CodeFormulaRuntime:
		return SeverityLow
	case CodeNotFound, CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeTableInvalid:
		return SeverityMedium
	case CodeInternal:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}
