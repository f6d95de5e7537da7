// File: doc.go
// Title: Formula Engine Package Documentation
// Description: Documents the formula language, its compilation pipeline,
//              and the evaluation semantics used for computed table
//              columns in the TLB platform.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-09
// Modified: 2026-08-09
//
// Change History:
// - 2026-08-09 v0.1.0: Initial formula engine documentation

/*
Package formula compiles and evaluates cell formulas for computed table
columns in the TLB platform.

A formula is a small arithmetic expression over literal numbers, quoted
strings, and field references. Compilation happens once per distinct
source; the compiled form is then evaluated once per row.

Key Features:
  • Four binary operators (+ - * /) with standard precedence
  • Field references with {name} syntax, resolved lazily per row
  • String concatenation through + when a string operand participates
  • Canonical number formatting (no float artifacts in output)
  • Total evaluation: failed cells yield the #ERR sentinel, never panics
  • Stable error taxonomy shared by compile and runtime failures

# Formula Syntax

	2 + 3 * 4                        # Numbers and precedence -> 14
	(2 + 3) * 4                      # Parentheses -> 20
	{price} * {qty}                  # Field references
	{first} + " " + {last}           # String concatenation
	-5 + 3                           # Unary minus -> -2
	={a} + {b}                       # Optional leading = is ignored

Field names inside braces are trimmed, so {qty} and { qty } reference
the same column. Curly smart quotes are normalized to straight quotes
before tokenizing, which keeps formulas pasted from rich-text editors
working.

# Compilation

Compile tokenizes the source and converts it to reverse Polish notation
with the shunting-yard algorithm. The compiled form carries the RPN
token sequence and the deduplicated list of referenced field names, in
first-appearance order. Unary + and - compile to a binary operation
against zero; unary * and / are rejected.

	compiled, err := formula.Compile("{price} * {qty}")
	if err != nil {
		var compileErr *parser.CompileError
		if errors.As(err, &compileErr) {
			// compileErr.Code, compileErr.Position
		}
	}

# Evaluation

Evaluate runs the RPN sequence on a small stack machine against one row
of field values. Evaluation is total: it never returns an error and
never panics. A failed evaluation carries the #ERR sentinel as its
value and the failure code in Result.Err.

	result := formula.Evaluate(compiled, map[string]interface{}{
		"price": "2.5",
		"qty":   4,
	}, nil)
	// result.Value == "10", result.Kind == ast.KindNumber

Field values coerce permissively: strings parse as numbers where a
number is needed (malformed input counts as 0), and numbers format
canonically where text is needed. The + operator concatenates only when
at least one operand is string-typed; two field references always add
numerically.

# Error Taxonomy

Compile-time codes: EMPTY_FORMULA, UNEXPECTED_CHAR, UNMATCHED_BRACE,
EMPTY_FIELD, UNMATCHED_PAREN, NUMERIC_OUT_OF_RANGE, UNARY_NOT_SUPPORTED,
UNTERMINATED_STRING. Runtime codes: STACK_UNDERFLOW, DIVIDE_BY_ZERO,
NON_FINITE_RESULT. The table layer adds SELF_REFERENCE for columns that
depend on themselves.
*/
package formula
