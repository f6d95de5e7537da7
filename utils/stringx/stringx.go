// File: stringx.go
// Title: String Utility Functions
// Description: Implements the small set of string operations shared across
//              the formula engine and its tooling: blank checks used by
//              input validation, smart-quote normalization applied before
//              tokenizing, and Unicode-safe truncation and padding for
//              diagnostics and table rendering.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-05
// Modified: 2026-08-05
//
// Change History:
// - 2026-08-05 v0.1.0: Initial implementation

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// quoteReplacer maps the curly double quotes produced by word processors and
// Obsidian's smart-quote setting onto the straight ASCII quote the formula
// tokenizer expects.
var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
)

// IsEmpty returns true if the string has length 0.
func IsEmpty(s string) bool {
	return len(s) == 0
}

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	if len(s) == 0 {
		return true
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank returns true if the string contains at least one
// non-whitespace character.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// NormalizeQuotes replaces curly double quotes with straight ASCII quotes.
// Formula sources pass through this before tokenizing so that text pasted
// from smart-quoting editors still parses as a string literal.
func NormalizeQuotes(s string) string {
	// Fast path: most formulas carry no smart quotes at all.
	if !strings.ContainsAny(s, "“”") {
		return s
	}
	return quoteReplacer.Replace(s)
}

// Truncate truncates a string to the specified number of runes, appending
// the ellipsis if anything was cut. Multi-byte characters are never split.
// If maxLen is too small to hold the ellipsis, the ellipsis alone is
// truncated to fit.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		runes := []rune(ellipsis)
		return string(runes[:maxLen])
	}

	runes := []rune(s)
	return string(runes[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads a string on the right with the pad rune until it reaches
// the given display width (counted in runes). Strings already at or past
// the width are returned unchanged.
func PadRight(s string, width int, pad rune) string {
	length := utf8.RuneCountInString(s)
	if length >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-length)
}

// PadLeft pads a string on the left with the pad rune until it reaches the
// given display width (counted in runes).
func PadLeft(s string, width int, pad rune) string {
	length := utf8.RuneCountInString(s)
	if length >= width {
		return s
	}
	return strings.Repeat(string(pad), width-length) + s
}
