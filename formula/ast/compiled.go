// File: compiled.go
// Title: Compiled Formula Artifact
// Description: Defines the immutable artifact produced by compilation:
//              the RPN token sequence plus the ordered set of referenced
//              field names. One CompiledFormula exists per distinct
//              source string and is reused across every row of every
//              render pass until the source changes.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial implementation

package ast

// CompiledFormula is the reusable result of compiling one formula source.
// Treat instances as immutable: the compiler never hands out shared
// mutable state, and evaluation reads but never writes them.
type CompiledFormula struct {
	// Original is the normalized source the formula was compiled from
	// (leading "=" stripped, smart quotes straightened).
	Original string

	// RPN is the postfix token sequence; parenthesis tokens never
	// appear here.
	RPN []Token

	// Dependencies lists every referenced field name, deduplicated, in
	// first-appearance order.
	Dependencies []string
}

// DependsOn reports whether the formula references the given field.
func (cf *CompiledFormula) DependsOn(field string) bool {
	for _, dep := range cf.Dependencies {
		if dep == field {
			return true
		}
	}
	return false
}

// IsSingleToken reports whether the compiled form is a lone literal or
// field reference, which evaluation serves through a fast path without
// running the stack machine.
func (cf *CompiledFormula) IsSingleToken() bool {
	return len(cf.RPN) == 1
}

// String returns the RPN sequence rendered as a single line.
func (cf *CompiledFormula) String() string {
	return FormatRPN(cf.RPN)
}
