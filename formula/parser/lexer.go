// File: lexer.go
// Title: Formula Tokenizer
// Description: Implements the tokenizer that turns a normalized formula
//              string into a flat token stream. Scans bytes with a
//              single-character lookahead; field references and string
//              literals copy byte runs verbatim, so UTF-8 content passes
//              through untouched.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial tokenizer implementation

package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
)

// Lexer scans a formula source string into tokens. The input must
// already be normalized (leading "=" stripped, smart quotes replaced);
// Compile performs that step before constructing a Lexer.
type Lexer struct {
	input        string
	position     int  // index of ch
	readPosition int  // index after ch
	ch           byte // current byte, 0 at end of input
}

// NewLexer creates a lexer over the given normalized input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar advances to the next byte, setting ch to 0 at end of input.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// Tokenize scans the whole input and returns the token stream. The first
// lexical error aborts the scan.
func (l *Lexer) Tokenize() ([]ast.Token, error) {
	tokens := make([]ast.Token, 0, 8)

	for {
		l.skipWhitespace()
		if l.ch == 0 {
			break
		}

		switch {
		case l.ch == '{':
			token, err := l.readField()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)

		case l.ch == '"':
			token, err := l.readString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)

		case l.ch == '+' || l.ch == '-' || l.ch == '*' || l.ch == '/':
			tokens = append(tokens, ast.OperatorToken(l.ch, l.position))
			l.readChar()

		case l.ch == '(':
			tokens = append(tokens, ast.Token{Kind: ast.TokenLeftParen, Pos: l.position})
			l.readChar()

		case l.ch == ')':
			tokens = append(tokens, ast.Token{Kind: ast.TokenRightParen, Pos: l.position})
			l.readChar()

		case isDigit(l.ch) || l.ch == '.':
			token, err := l.readNumber()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token)

		default:
			r, _ := utf8.DecodeRuneInString(l.input[l.position:])
			return nil, newCompileError(ast.CodeUnexpectedChar, l.position,
				"unexpected character %q", string(r))
		}
	}

	return tokens, nil
}

// skipWhitespace consumes spaces, tabs, and line breaks.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readChar()
	}
}

// readField reads a {field} reference. The first closing brace ends the
// reference; the inner text is trimmed.
func (l *Lexer) readField() (ast.Token, error) {
	start := l.position
	l.readChar() // consume '{'

	var builder strings.Builder
	for l.ch != '}' {
		if l.ch == 0 {
			return ast.Token{}, newCompileError(ast.CodeUnmatchedBrace, start,
				"unmatched '{': missing closing brace")
		}
		builder.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // consume '}'

	name := strings.TrimSpace(builder.String())
	if name == "" {
		return ast.Token{}, newCompileError(ast.CodeEmptyField, start,
			"empty field name")
	}

	return ast.FieldToken(name, start), nil
}

// readString reads a double-quoted string literal with the escapes
// \" \\ \n \t \r; any other escaped character is taken literally.
func (l *Lexer) readString() (ast.Token, error) {
	start := l.position
	l.readChar() // consume opening quote

	var builder strings.Builder
	for l.ch != '"' {
		if l.ch == 0 {
			return ast.Token{}, newCompileError(ast.CodeUnterminatedString, start,
				"unterminated string literal")
		}
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return ast.Token{}, newCompileError(ast.CodeUnterminatedString, start,
					"unterminated string literal")
			}
			switch l.ch {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			case 'r':
				builder.WriteByte('\r')
			default:
				// Covers \" and \\ as well: the escaped byte itself.
				builder.WriteByte(l.ch)
			}
			l.readChar()
			continue
		}
		builder.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote

	return ast.StringToken(builder.String(), start), nil
}

// readNumber reads a numeric literal: digits with at most one decimal
// point. The scan stops before a second point, so "1.2.3" produces two
// number tokens rather than an error.
func (l *Lexer) readNumber() (ast.Token, error) {
	start := l.position
	seenDot := false
	seenDigit := false

	var builder strings.Builder
	for {
		if isDigit(l.ch) {
			seenDigit = true
			builder.WriteByte(l.ch)
			l.readChar()
			continue
		}
		if l.ch == '.' && !seenDot {
			seenDot = true
			builder.WriteByte(l.ch)
			l.readChar()
			continue
		}
		break
	}

	literal := builder.String()
	if !seenDigit {
		return ast.Token{}, newCompileError(ast.CodeUnexpectedChar, start,
			"unexpected character %q", literal)
	}

	value, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
		return ast.Token{}, newCompileError(ast.CodeNumericOutOfRange, start,
			"numeric literal %q out of range", literal)
	}

	return ast.NumberToken(value, start), nil
}

// isDigit reports whether the byte is an ASCII digit.
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Tokenize is a convenience wrapper that scans a full normalized input.
func Tokenize(input string) ([]ast.Token, error) {
	return NewLexer(input).Tokenize()
}
