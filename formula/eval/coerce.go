// File: coerce.go
// Title: Value Coercion and Canonical Number Formatting
// Description: Implements the four coercion rules shared by the
//              evaluator: string to number, raw field value to number,
//              number to canonical string, and raw field value to
//              string. All rules are total; malformed input coerces to
//              a zero value instead of failing.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial coercion implementation

package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseNumeric converts a string to a float64 permissively: surrounding
// whitespace is ignored, and empty, malformed, or non-finite input
// coerces to 0.
func parseNumeric(s string) float64 {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}

// formatNumber renders a float64 in canonical display form: zero
// (including negative zero) as "0", integral values without a decimal
// point, and fractional values with at most six fractional digits and
// no trailing zeros.
func formatNumber(value float64) string {
	if value == 0 {
		return "0"
	}
	if value == math.Trunc(value) {
		return strconv.FormatFloat(value, 'f', -1, 64)
	}

	formatted := strconv.FormatFloat(value, 'f', 6, 64)
	formatted = strings.TrimRight(formatted, "0")
	return strings.TrimSuffix(formatted, ".")
}

// fieldNumber coerces a raw field value to a float64. Numeric Go kinds
// convert directly; everything else goes through its string form and
// the permissive parseNumeric rule.
func fieldNumber(raw interface{}) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		return parseNumeric(v)
	default:
		return parseNumeric(fmt.Sprintf("%v", raw))
	}
}

// fieldString coerces a raw field value to its display string. Numbers
// use the canonical format; integer kinds keep their full precision
// instead of passing through float64.
func fieldString(raw interface{}) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	case float32:
		return formatNumber(float64(v))
	case int:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", raw)
	}
}
