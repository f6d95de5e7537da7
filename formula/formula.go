// File: formula.go
// Title: Formula Engine Main Interface
// Description: Provides the main formula engine interface and high-level
//              API for compiling and evaluating cell formulas. Integrates
//              the tokenizer, RPN compiler, and stack evaluator components.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-09
// Modified: 2026-08-09
//
// Change History:
// - 2026-08-09 v0.1.0: Initial formula engine implementation

package formula

import (
	"errors"
	"sync"

	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
	tlblog "github.com/campfirium/obsidian-tile-line-base-sub002/core/log"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/eval"
	fparser "github.com/campfirium/obsidian-tile-line-base-sub002/formula/parser"
	"github.com/campfirium/obsidian-tile-line-base-sub002/utils/stringx"
)

// Sentinel is the display value of a cell whose formula failed.
const Sentinel = eval.Sentinel

// FieldResolver resolves a field name to its raw value during
// evaluation.
type FieldResolver = eval.FieldResolver

// Engine represents the formula engine that coordinates compilation and
// evaluation of cell formulas
type Engine struct {
	parser  *fparser.Parser
	logger  *tlblog.Logger
	options Options
}

// Options configures the formula engine behavior
type Options struct {
	// Logger for formula operations (optional, defaults to default logger)
	Logger *tlblog.Logger

	// MaxFormulaLength limits input formula length (default: 4096)
	MaxFormulaLength int
}

// Error represents a formula-specific error with additional context
type Error struct {
	Err     error
	formula string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "formula error"
}

// Unwrap exposes the underlying error for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error methods for formula-specific error information
func (e *Error) Formula() string { return e.formula }

// Code returns the taxonomy code when the underlying error is a compile
// error, and the empty code otherwise.
func (e *Error) Code() ast.Code {
	var compileErr *fparser.CompileError
	if errors.As(e.Err, &compileErr) {
		return compileErr.Code
	}
	return ""
}

// Position returns the source byte offset when the underlying error is
// a compile error, and 0 otherwise.
func (e *Error) Position() int {
	var compileErr *fparser.CompileError
	if errors.As(e.Err, &compileErr) {
		return compileErr.Position
	}
	return 0
}

// NewEngine creates a new formula engine with the specified options
func NewEngine(opts ...Options) (*Engine, error) {
	// Default options
	options := Options{
		Logger:           tlblog.GetDefault(),
		MaxFormulaLength: 4096,
	}

	// Apply provided options
	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.MaxFormulaLength > 0 {
			options.MaxFormulaLength = provided.MaxFormulaLength
		}
	}

	// Create logger with engine context
	logger := options.Logger.WithField("component", "formula-engine")

	// Create parser
	p, err := fparser.New(fparser.Options{
		Logger: logger,
	})
	if err != nil {
		return nil, tlberror.Wrap(err, "failed to initialize formula parser")
	}

	engine := &Engine{
		parser:  p,
		logger:  logger,
		options: options,
	}

	logger.Debug("formula engine initialized", tlblog.Fields{
		"maxFormulaLength": options.MaxFormulaLength,
	})

	return engine, nil
}

// Compile turns a raw formula source into its reusable compiled form.
// Callers should cache the result keyed by source text; compilation is
// deterministic, so one source never needs compiling twice.
func (e *Engine) Compile(raw string) (*ast.CompiledFormula, error) {
	if err := e.validateInput(raw); err != nil {
		return nil, err
	}

	compiled, err := e.parser.Compile(raw)
	if err != nil {
		e.logger.Warn("formula compilation failed", tlblog.Fields{
			"formula": stringx.Truncate(raw, 64, "..."),
			"error":   err.Error(),
		})
		return nil, e.wrapCompileError(err, raw)
	}

	return compiled, nil
}

// Evaluate runs a compiled formula against one row of field values.
// It never returns an error: failures are reported through the result's
// Err field with Value set to Sentinel.
func (e *Engine) Evaluate(cf *ast.CompiledFormula, row map[string]interface{}, resolve FieldResolver) *ast.EvaluationResult {
	result := eval.Evaluate(cf, row, resolve)
	if result.Err != nil {
		e.logger.Debug("formula evaluation failed", tlblog.Fields{
			"code":  result.Err.Code.String(),
			"error": result.Err.Message,
		})
	}
	return result
}

// EvalString compiles and immediately evaluates a formula source. The
// error return covers compilation only; evaluation failures land in the
// result as usual.
func (e *Engine) EvalString(raw string, row map[string]interface{}) (*ast.EvaluationResult, error) {
	compiled, err := e.Compile(raw)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(compiled, row, nil), nil
}

// MaxFormulaLength returns the configured input length limit.
func (e *Engine) MaxFormulaLength() int {
	return e.options.MaxFormulaLength
}

// validateInput checks limits that apply before tokenization.
func (e *Engine) validateInput(raw string) error {
	if len(raw) > e.options.MaxFormulaLength {
		err := tlberror.Newf("formula exceeds maximum length: %d > %d",
			len(raw), e.options.MaxFormulaLength).
			WithCode(tlberror.CodeInvalidInput)
		return &Error{
			Err:     err,
			formula: stringx.Truncate(raw, 64, "..."),
		}
	}
	return nil
}

// wrapCompileError attaches formula context to a parser error.
func (e *Engine) wrapCompileError(err error, raw string) error {
	if facadeErr, ok := err.(*Error); ok {
		return facadeErr
	}

	return &Error{
		Err:     err,
		formula: stringx.Truncate(raw, 64, "..."),
	}
}

// Default engine for package-level convenience functions.
var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

// Default returns the lazily created package-level engine.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine, _ = NewEngine()
	})
	return defaultEngine
}

// Compile compiles a formula source with the default engine.
func Compile(raw string) (*ast.CompiledFormula, error) {
	return Default().Compile(raw)
}

// Evaluate evaluates a compiled formula with the default engine.
func Evaluate(cf *ast.CompiledFormula, row map[string]interface{}, resolve FieldResolver) *ast.EvaluationResult {
	return Default().Evaluate(cf, row, resolve)
}

// EvalString compiles and evaluates a formula source with the default
// engine.
func EvalString(raw string, row map[string]interface{}) (*ast.EvaluationResult, error) {
	return Default().EvalString(raw, row)
}
