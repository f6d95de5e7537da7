// File: token.go
// Title: Formula Token Definitions
// Description: Defines the token variants produced by the tokenizer and
//              consumed by the compiler and evaluator. Tokens form a flat
//              stream; parenthesis tokens exist only between tokenizing
//              and compilation and never appear in compiled output.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial token definitions

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind discriminates the token variants.
type TokenKind int

const (
	// TokenNumber is a numeric literal; payload in Token.Number.
	TokenNumber TokenKind = iota

	// TokenField is a {field} reference; trimmed name in Token.Text.
	TokenField

	// TokenString is a double-quoted literal; decoded text in Token.Text.
	TokenString

	// TokenOperator is one of + - * /; payload in Token.Op.
	TokenOperator

	// TokenLeftParen is an opening parenthesis.
	TokenLeftParen

	// TokenRightParen is a closing parenthesis.
	TokenRightParen
)

// String returns the name of the token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "NUMBER"
	case TokenField:
		return "FIELD"
	case TokenString:
		return "STRING"
	case TokenOperator:
		return "OPERATOR"
	case TokenLeftParen:
		return "LPAREN"
	case TokenRightParen:
		return "RPAREN"
	default:
		return fmt.Sprintf("KIND(%d)", int(k))
	}
}

// Operator bytes carried by TokenOperator.
const (
	OpAdd      byte = '+'
	OpSubtract byte = '-'
	OpMultiply byte = '*'
	OpDivide   byte = '/'
)

// Token is one element of a formula token stream.
type Token struct {
	Kind   TokenKind // variant discriminator
	Number float64   // payload for TokenNumber
	Text   string    // payload for TokenField and TokenString
	Op     byte      // payload for TokenOperator
	Pos    int       // byte offset in the normalized source
}

// NumberToken creates a numeric literal token.
func NumberToken(value float64, pos int) Token {
	return Token{Kind: TokenNumber, Number: value, Pos: pos}
}

// FieldToken creates a field reference token.
func FieldToken(name string, pos int) Token {
	return Token{Kind: TokenField, Text: name, Pos: pos}
}

// StringToken creates a string literal token.
func StringToken(text string, pos int) Token {
	return Token{Kind: TokenString, Text: text, Pos: pos}
}

// OperatorToken creates an operator token.
func OperatorToken(op byte, pos int) Token {
	return Token{Kind: TokenOperator, Op: op, Pos: pos}
}

// String returns a compact human-readable form used in diagnostics and
// the inspect output.
func (t Token) String() string {
	switch t.Kind {
	case TokenNumber:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	case TokenField:
		return "{" + t.Text + "}"
	case TokenString:
		return strconv.Quote(t.Text)
	case TokenOperator:
		return string(t.Op)
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return "?"
	}
}

// IsOperand reports whether the token produces a value on its own.
func (t Token) IsOperand() bool {
	switch t.Kind {
	case TokenNumber, TokenField, TokenString:
		return true
	default:
		return false
	}
}

// FormatRPN renders a compiled token sequence as a single line, for
// example "2 3 4 * +".
func FormatRPN(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
