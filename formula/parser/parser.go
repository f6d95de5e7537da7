// File: parser.go
// Title: Formula Compiler (Shunting-Yard)
// Description: Implements compilation of infix formula sources into the
//              postfix (RPN) form the evaluator executes, collecting the
//              referenced field names along the way. Unary plus and minus
//              compile as "0 <op> x"; unary * and / are rejected.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-08
// Modified: 2026-08-08
//
// Change History:
// - 2026-08-08 v0.1.0: Initial compiler implementation

package parser

import (
	"fmt"
	"strings"

	tlblog "github.com/campfirium/obsidian-tile-line-base-sub002/core/log"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
	"github.com/campfirium/obsidian-tile-line-base-sub002/utils/stringx"
)

// CompileError is a compile-time formula failure. The position is a byte
// offset into the normalized source.
type CompileError struct {
	Code     ast.Code
	Message  string
	Position int
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s at position %d", e.Message, e.Position)
	}
	return e.Message
}

// newCompileError creates a CompileError with a formatted message.
func newCompileError(code ast.Code, position int, format string, args ...interface{}) *CompileError {
	return &CompileError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
	}
}

// Options configures a Parser.
type Options struct {
	// Logger for compile diagnostics (optional, defaults to the
	// package default logger).
	Logger *tlblog.Logger
}

// Parser compiles formula sources into CompiledFormula artifacts. A
// Parser is stateless between Compile calls and safe for concurrent use.
type Parser struct {
	logger *tlblog.Logger
}

// New creates a parser with the given options.
func New(opts Options) (*Parser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = tlblog.GetDefault()
	}

	return &Parser{
		logger: logger.WithField("component", "formula-parser"),
	}, nil
}

// Normalize prepares a raw formula source for tokenizing: strips one
// leading "=" and replaces curly smart quotes with straight quotes.
func Normalize(raw string) string {
	normalized := strings.TrimPrefix(raw, "=")
	return stringx.NormalizeQuotes(normalized)
}

// Compile turns a raw formula source into its compiled form. On failure
// the returned error is a *CompileError carrying the taxonomy code and
// source position.
func (p *Parser) Compile(raw string) (*ast.CompiledFormula, error) {
	normalized := Normalize(raw)

	if stringx.IsBlank(normalized) {
		return nil, newCompileError(ast.CodeEmptyFormula, 0, "empty formula")
	}

	tokens, err := Tokenize(normalized)
	if err != nil {
		p.logger.Debug("tokenize failed", tlblog.Fields{
			"source": stringx.Truncate(normalized, 64, "..."),
			"error":  err.Error(),
		})
		return nil, err
	}

	rpn, dependencies, compileErr := toRPN(tokens)
	if compileErr != nil {
		p.logger.Debug("compile failed", tlblog.Fields{
			"source": stringx.Truncate(normalized, 64, "..."),
			"error":  compileErr.Error(),
		})
		return nil, compileErr
	}

	compiled := &ast.CompiledFormula{
		Original:     normalized,
		RPN:          rpn,
		Dependencies: dependencies,
	}

	p.logger.Debug("formula compiled", tlblog.Fields{
		"source":       stringx.Truncate(normalized, 64, "..."),
		"rpnTokens":    len(rpn),
		"dependencies": len(dependencies),
	})

	return compiled, nil
}

// prevClass tracks the previously consumed token class for unary
// operator detection.
type prevClass int

const (
	prevNone prevClass = iota
	prevOperand
	prevOperator
	prevLeftParen
)

// precedence returns the binding strength of an operator byte.
func precedence(op byte) int {
	switch op {
	case ast.OpMultiply, ast.OpDivide:
		return 2
	case ast.OpAdd, ast.OpSubtract:
		return 1
	default:
		return 0
	}
}

// toRPN runs the shunting-yard conversion over a token stream. It
// returns the postfix sequence and the deduplicated, insertion-ordered
// dependency list.
func toRPN(tokens []ast.Token) ([]ast.Token, []string, *CompileError) {
	output := make([]ast.Token, 0, len(tokens))
	stack := make([]ast.Token, 0, 8)
	dependencies := make([]string, 0, 4)
	seen := make(map[string]struct{})
	prev := prevNone

	for _, token := range tokens {
		switch token.Kind {
		case ast.TokenNumber, ast.TokenString:
			output = append(output, token)
			prev = prevOperand

		case ast.TokenField:
			output = append(output, token)
			if _, dup := seen[token.Text]; !dup {
				seen[token.Text] = struct{}{}
				dependencies = append(dependencies, token.Text)
			}
			prev = prevOperand

		case ast.TokenOperator:
			if prev == prevNone || prev == prevOperator || prev == prevLeftParen {
				// Unary position: + and - compile as "0 <op> x", which
				// keeps the evaluator strictly binary.
				if token.Op == ast.OpAdd || token.Op == ast.OpSubtract {
					output = append(output, ast.NumberToken(0, token.Pos))
				} else {
					return nil, nil, newCompileError(ast.CodeUnaryNotSupported, token.Pos,
						"operator %q is not supported in unary position", string(token.Op))
				}
			}

			// The >= comparison pops equal-precedence operators, which
			// encodes left-associativity.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != ast.TokenOperator {
					break
				}
				if precedence(top.Op) < precedence(token.Op) {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, token)
			prev = prevOperator

		case ast.TokenLeftParen:
			stack = append(stack, token)
			prev = prevLeftParen

		case ast.TokenRightParen:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == ast.TokenLeftParen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, nil, newCompileError(ast.CodeUnmatchedParen, token.Pos,
					"unmatched parenthesis")
			}
			prev = prevOperand
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == ast.TokenLeftParen {
			return nil, nil, newCompileError(ast.CodeUnmatchedParen, top.Pos,
				"unmatched parenthesis")
		}
		output = append(output, top)
	}

	return output, dependencies, nil
}
