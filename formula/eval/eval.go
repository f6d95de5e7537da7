// File: eval.go
// Title: RPN Stack Evaluator
// Description: Implements the stack machine that evaluates a compiled
//              formula against one row of field values. Evaluation is
//              total: every failure is reported through the result's
//              Err field together with the sentinel value, never as a
//              returned error or panic.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial evaluator implementation

package eval

import (
	"math"

	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
)

// Sentinel is the display value of every failed evaluation.
const Sentinel = "#ERR"

// epsilon is the divisor magnitude below which division reports
// DIVIDE_BY_ZERO instead of producing huge or non-finite quotients.
const epsilon = 1.0 / (1 << 52)

// FieldResolver resolves a field name to its raw value. A resolver
// passed to Evaluate takes priority over the row map for every field;
// returning nil means the field is missing.
type FieldResolver func(name string) interface{}

// valueTag discriminates the operand variants on the evaluation stack.
type valueTag uint8

const (
	tagNumber valueTag = iota
	tagString
	tagField
)

// stackValue is one operand on the evaluation stack. Field operands
// keep their raw resolved value untyped until an operator consumes
// them, so the same reference can act as a number or as text depending
// on context.
type stackValue struct {
	tag valueTag
	num float64
	str string
	raw interface{}
}

// number coerces the operand to a float64.
func (v stackValue) number() float64 {
	switch v.tag {
	case tagNumber:
		return v.num
	case tagString:
		return parseNumeric(v.str)
	default:
		return fieldNumber(v.raw)
	}
}

// text coerces the operand to its display string.
func (v stackValue) text() string {
	switch v.tag {
	case tagNumber:
		return formatNumber(v.num)
	case tagString:
		return v.str
	default:
		return fieldString(v.raw)
	}
}

// errorResult builds a failed evaluation result carrying the sentinel.
func errorResult(code ast.Code, format string, args ...interface{}) *ast.EvaluationResult {
	return &ast.EvaluationResult{
		Value: Sentinel,
		Kind:  ast.KindString,
		Err:   ast.NewEvalError(code, format, args...),
	}
}

// Evaluate runs a compiled formula against one row of field values.
// When resolve is nil, fields are looked up directly in row; a missing
// field resolves to nil. Evaluate never returns an error: failures are
// reported through the result's Err field with Value set to Sentinel.
func Evaluate(cf *ast.CompiledFormula, row map[string]interface{}, resolve FieldResolver) *ast.EvaluationResult {
	if resolve == nil {
		resolve = func(name string) interface{} {
			if row == nil {
				return nil
			}
			return row[name]
		}
	}

	if cf == nil {
		return errorResult(ast.CodeStackUnderflow, "no compiled formula")
	}

	// Single-token formulas skip the stack machine. A sole field
	// reference passes its raw value through as text, so untyped
	// content is never reformatted.
	if len(cf.RPN) == 1 {
		token := cf.RPN[0]
		switch token.Kind {
		case ast.TokenField:
			return &ast.EvaluationResult{
				Value: fieldString(resolve(token.Text)),
				Kind:  ast.KindString,
			}
		case ast.TokenNumber:
			return &ast.EvaluationResult{
				Value:        formatNumber(token.Number),
				Kind:         ast.KindNumber,
				NumericValue: token.Number,
			}
		case ast.TokenString:
			return &ast.EvaluationResult{
				Value: token.Text,
				Kind:  ast.KindString,
			}
		}
	}

	stack := make([]stackValue, 0, len(cf.RPN))

	for _, token := range cf.RPN {
		switch token.Kind {
		case ast.TokenNumber:
			stack = append(stack, stackValue{tag: tagNumber, num: token.Number})

		case ast.TokenString:
			stack = append(stack, stackValue{tag: tagString, str: token.Text})

		case ast.TokenField:
			stack = append(stack, stackValue{tag: tagField, raw: resolve(token.Text)})

		case ast.TokenOperator:
			if len(stack) < 2 {
				return errorResult(ast.CodeStackUnderflow,
					"operator %q needs two operands", string(token.Op))
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]

			var result stackValue
			switch token.Op {
			case ast.OpAdd:
				// A field reference alone does not switch to string
				// mode; one operand must already be tagged as text.
				if left.tag == tagString || right.tag == tagString {
					result = stackValue{tag: tagString, str: left.text() + right.text()}
				} else {
					result = stackValue{tag: tagNumber, num: left.number() + right.number()}
				}

			case ast.OpSubtract:
				result = stackValue{tag: tagNumber, num: left.number() - right.number()}

			case ast.OpMultiply:
				result = stackValue{tag: tagNumber, num: left.number() * right.number()}

			case ast.OpDivide:
				divisor := right.number()
				if math.Abs(divisor) < epsilon {
					return errorResult(ast.CodeDivideByZero, "division by zero")
				}
				result = stackValue{tag: tagNumber, num: left.number() / divisor}

			default:
				return errorResult(ast.CodeUnexpectedChar,
					"unknown operator %q", string(token.Op))
			}
			stack = append(stack, result)

		default:
			return errorResult(ast.CodeUnexpectedChar,
				"unexpected %s token in compiled formula", token.Kind)
		}
	}

	if len(stack) != 1 {
		return errorResult(ast.CodeStackUnderflow,
			"evaluation finished with %d values, want 1", len(stack))
	}

	final := stack[0]
	switch final.tag {
	case tagString:
		return &ast.EvaluationResult{Value: final.str, Kind: ast.KindString}

	case tagField:
		return &ast.EvaluationResult{
			Value: fieldString(final.raw),
			Kind:  ast.KindString,
		}

	default:
		if math.IsNaN(final.num) || math.IsInf(final.num, 0) {
			return errorResult(ast.CodeNonFiniteResult, "result is not a finite number")
		}
		return &ast.EvaluationResult{
			Value:        formatNumber(final.num),
			Kind:         ast.KindNumber,
			NumericValue: final.num,
		}
	}
}
