// File: stringx_test.go
// Title: Unit Tests for String Utilities
// Description: Table-driven tests for the string helpers shared by the
//              formula engine and tooling, with emphasis on Unicode safety
//              and the quote-normalization rules the tokenizer relies on.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-05
// Modified: 2026-08-05
//
// Change History:
// - 2026-08-05 v0.1.0: Initial test implementation

package stringx

import (
	"testing"
)

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"empty string", "", true},
		{"single space", " ", true},
		{"tabs and newlines", " \t\r\n ", true},
		{"non-breaking space", " ", true},
		{"content", "= 1 + 2", false},
		{"content with padding", "  {price}  ", false},
		{"unicode content", "größe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsBlank(tt.input)
			if result != tt.expected {
				t.Errorf("IsBlank(%q) = %v; want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeQuotes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no quotes", "{a} + {b} * 2", "{a} + {b} * 2"},
		{"straight quotes untouched", `"hello"`, `"hello"`},
		{"curly pair", "“hello”", `"hello"`},
		{"curly mixed with straight", "“left\" + \"right”", `"left" + "right"`},
		{"curly inside formula", "{name} + “!”", `{name} + "!"`},
		{"only opening curly", "“unterminated", `"unterminated`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeQuotes(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeQuotes(%q) = %q; want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		expected string
	}{
		{"fits exactly", "12345", 5, "...", "12345"},
		{"shorter than max", "abc", 10, "...", "abc"},
		{"simple cut", "abcdefghij", 6, "...", "abc..."},
		{"unicode safe", "äöüäöüäöü", 5, "…", "äöüä…"},
		{"zero max", "abc", 0, "...", ""},
		{"ellipsis larger than max", "abcdef", 2, "...", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Truncate(tt.input, tt.maxLen, tt.ellipsis)
			if result != tt.expected {
				t.Errorf("Truncate(%q, %d, %q) = %q; want %q",
					tt.input, tt.maxLen, tt.ellipsis, result, tt.expected)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		pad      rune
		expected string
	}{
		{"pad with spaces", "id", 5, ' ', "id   "},
		{"already wide enough", "value", 3, ' ', "value"},
		{"exact width", "abc", 3, '.', "abc"},
		{"unicode counted in runes", "äö", 4, '-', "äö--"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PadRight(tt.input, tt.width, tt.pad)
			if result != tt.expected {
				t.Errorf("PadRight(%q, %d, %q) = %q; want %q",
					tt.input, tt.width, tt.pad, result, tt.expected)
			}
		})
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		pad      rune
		expected string
	}{
		{"pad with spaces", "42", 5, ' ', "   42"},
		{"pad with zeros", "7", 3, '0', "007"},
		{"already wide enough", "123456", 4, '0', "123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PadLeft(tt.input, tt.width, tt.pad)
			if result != tt.expected {
				t.Errorf("PadLeft(%q, %d, %q) = %q; want %q",
					tt.input, tt.width, tt.pad, result, tt.expected)
			}
		})
	}
}
