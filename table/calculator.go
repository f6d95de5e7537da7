// File: calculator.go
// Title: Table Column Calculator
// Description: Drives formula evaluation for computed table columns.
//              Owns the per-source compile cache, the self-reference
//              guard, and the row ceiling that the formula engine
//              deliberately leaves to its caller.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-10
// Modified: 2026-08-10
//
// Change History:
// - 2026-08-10 v0.1.0: Initial calculator implementation

package table

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	tlbcache "github.com/campfirium/obsidian-tile-line-base-sub002/core/cache"
	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
	tlblog "github.com/campfirium/obsidian-tile-line-base-sub002/core/log"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
	"github.com/campfirium/obsidian-tile-line-base-sub002/utils/stringx"
)

// ColumnSpec describes one table column. A column with an empty Formula
// is a plain data column; a non-empty Formula makes it computed.
type ColumnSpec struct {
	Name    string
	Formula string
}

// Options configures the calculator behavior
type Options struct {
	// Logger for calculator operations (optional, defaults to default logger)
	Logger *tlblog.Logger

	// Engine used for compilation and evaluation (optional, defaults
	// to a fresh engine)
	Engine *formula.Engine

	// MaxComputedRows is the row count above which a render pass skips
	// formula evaluation entirely (default: 5000)
	MaxComputedRows int
}

// RowValues holds the evaluation results of one row, keyed by computed
// column name.
type RowValues map[string]*ast.EvaluationResult

// PassResult describes one render pass over a set of rows.
type PassResult struct {
	// PassID identifies the pass in logs.
	PassID string

	// StartedAt is the wall-clock start of the pass.
	StartedAt time.Time

	// Duration is the total pass time.
	Duration time.Duration

	// Skipped reports that formula evaluation did not run, with the
	// reason in SkipReason.
	Skipped    bool
	SkipReason string

	// Rows carries one value map per input row; nil when Skipped.
	Rows []RowValues
}

// column is the calculator's internal state for one column spec.
type column struct {
	spec     ColumnSpec
	compiled *ast.CompiledFormula
	err      error          // compile or self-reference error, nil when healthy
	cellErr  *ast.EvalError // pre-built failure shared by synthesized cell results
}

// computed reports whether the column carries a formula.
func (c *column) computed() bool {
	return c.spec.Formula != ""
}

// compileOutcome caches one compilation, success or failure, keyed by
// the exact source string.
type compileOutcome struct {
	compiled *ast.CompiledFormula
	err      error
}

// Calculator evaluates computed columns over table rows. Column setup
// and render passes may run from different goroutines; the calculator
// serializes access to its column state.
type Calculator struct {
	options Options
	logger  *tlblog.Logger
	engine  *formula.Engine

	mu      sync.RWMutex
	columns []*column
	byName  map[string]*column
	cache   *tlbcache.Cache
}

// New creates a new calculator with the specified options
func New(opts ...Options) (*Calculator, error) {
	// Default options
	options := Options{
		Logger:          tlblog.GetDefault(),
		MaxComputedRows: 5000,
	}

	// Apply provided options
	if len(opts) > 0 {
		provided := opts[0]
		if provided.Logger != nil {
			options.Logger = provided.Logger
		}
		if provided.Engine != nil {
			options.Engine = provided.Engine
		}
		if provided.MaxComputedRows > 0 {
			options.MaxComputedRows = provided.MaxComputedRows
		}
	}

	// Create logger with calculator context
	logger := options.Logger.WithField("component", "table-calculator")

	engine := options.Engine
	if engine == nil {
		var err error
		engine, err = formula.NewEngine(formula.Options{Logger: options.Logger})
		if err != nil {
			return nil, tlberror.Wrap(err, "failed to initialize formula engine")
		}
	}

	return &Calculator{
		options: options,
		logger:  logger,
		engine:  engine,
		byName:  make(map[string]*column),
		cache:   tlbcache.New(tlbcache.Config{}),
	}, nil
}

// SetColumns replaces the column set. Column names must be unique and
// non-blank. Formulas compile once per distinct source string; compile
// failures do NOT fail the call but mark the column, so its cells later
// render as sentinel values. A column whose formula references its own
// name is marked permanently invalid and never evaluated.
func (c *Calculator) SetColumns(specs []ColumnSpec) error {
	columns := make([]*column, 0, len(specs))
	byName := make(map[string]*column, len(specs))

	for i, spec := range specs {
		if stringx.IsBlank(spec.Name) {
			return tlberror.Newf("column %d has a blank name", i).
				WithCode(tlberror.CodeTableInvalid)
		}
		if _, exists := byName[spec.Name]; exists {
			return tlberror.Newf("duplicate column name %q", spec.Name).
				WithCode(tlberror.CodeTableInvalid)
		}

		col := &column{spec: spec}
		if col.computed() {
			c.setupComputed(col)
		}

		columns = append(columns, col)
		byName[spec.Name] = col
	}

	computedCount := 0
	for _, col := range columns {
		if col.computed() {
			computedCount++
		}
	}

	c.mu.Lock()
	c.columns = columns
	c.byName = byName
	c.mu.Unlock()

	stats := c.cache.Stats()
	c.logger.Debug("columns configured", tlblog.Fields{
		"columns":     len(columns),
		"computed":    computedCount,
		"cacheHits":   stats.Hits,
		"cacheMisses": stats.Misses,
	})

	return nil
}

// setupComputed compiles the column formula through the shared cache
// and applies the self-reference guard.
func (c *Calculator) setupComputed(col *column) {
	outcome := c.compileCached(col.spec.Formula)
	col.compiled = outcome.compiled

	if outcome.err != nil {
		col.err = outcome.err
		col.cellErr = ast.NewEvalError(compileCode(outcome.err), "%s", outcome.err.Error())
		return
	}

	if outcome.compiled.DependsOn(col.spec.Name) {
		selfErr := ast.NewEvalError(ast.CodeSelfReference,
			"column %q references itself", col.spec.Name)
		col.err = selfErr
		col.cellErr = selfErr
		c.logger.Warn("self-referential column disabled", tlblog.Fields{
			"column":  col.spec.Name,
			"formula": stringx.Truncate(col.spec.Formula, 64, "..."),
		})
	}
}

// compileCached returns the cached compilation of a source, compiling
// on first sight. Both successes and failures are cached: a broken
// formula stays broken until its source text changes, so recompiling
// it on every reconfiguration would only repeat the diagnosis.
func (c *Calculator) compileCached(source string) *compileOutcome {
	value := c.cache.GetOrCompute(source, func() interface{} {
		compiled, err := c.engine.Compile(source)
		return &compileOutcome{compiled: compiled, err: err}
	})
	return value.(*compileOutcome)
}

// ComputeRows runs one render pass over the given rows. When the row
// count exceeds MaxComputedRows the pass is skipped rather than partial:
// every computed cell of the pass is left unrendered and the result
// says why.
func (c *Calculator) ComputeRows(rows []map[string]interface{}) *PassResult {
	timer := c.logger.StartTimer("table_compute_pass")

	pass := &PassResult{
		PassID:    uuid.New().String(),
		StartedAt: time.Now(),
	}

	if len(rows) > c.options.MaxComputedRows {
		pass.Skipped = true
		pass.SkipReason = fmt.Sprintf("row count %d exceeds limit %d",
			len(rows), c.options.MaxComputedRows)
		pass.Duration = time.Since(pass.StartedAt)

		c.logger.Warn("formula pass skipped", tlblog.Fields{
			"passID":          pass.PassID,
			"rows":            len(rows),
			"maxComputedRows": c.options.MaxComputedRows,
		})
		timer.Stop()
		return pass
	}

	c.mu.RLock()
	computed := make([]*column, 0, len(c.columns))
	for _, col := range c.columns {
		if col.computed() {
			computed = append(computed, col)
		}
	}
	c.mu.RUnlock()

	pass.Rows = make([]RowValues, len(rows))
	for i, row := range rows {
		values := make(RowValues, len(computed))
		for _, col := range computed {
			values[col.spec.Name] = c.cellResult(col, row)
		}
		pass.Rows[i] = values
	}

	pass.Duration = time.Since(pass.StartedAt)
	c.logger.Debug("formula pass completed", tlblog.Fields{
		"passID":   pass.PassID,
		"rows":     len(rows),
		"columns":  len(computed),
		"duration": pass.Duration,
	})
	timer.Stop()

	return pass
}

// ComputeCell evaluates a single computed column against one row. It
// returns nil for unknown or plain columns.
func (c *Calculator) ComputeCell(name string, row map[string]interface{}) *ast.EvaluationResult {
	c.mu.RLock()
	col, ok := c.byName[name]
	c.mu.RUnlock()

	if !ok || !col.computed() {
		return nil
	}
	return c.cellResult(col, row)
}

// cellResult produces the evaluation result of one cell. Broken columns
// synthesize their stored failure without re-invoking the engine.
func (c *Calculator) cellResult(col *column, row map[string]interface{}) *ast.EvaluationResult {
	if col.cellErr != nil {
		return &ast.EvaluationResult{
			Value: formula.Sentinel,
			Kind:  ast.KindString,
			Err:   col.cellErr,
		}
	}
	return c.engine.Evaluate(col.compiled, row, nil)
}

// ComputedColumns returns the computed column names in spec order.
func (c *Calculator) ComputedColumns() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.computedNames()
}

// computedNames collects computed column names; callers hold the lock.
func (c *Calculator) computedNames() []string {
	names := make([]string, 0, len(c.columns))
	for _, col := range c.columns {
		if col.computed() {
			names = append(names, col.spec.Name)
		}
	}
	return names
}

// ColumnError returns the stored compile or self-reference error of a
// column, nil when the column is healthy or unknown.
func (c *Calculator) ColumnError(name string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.byName[name]
	if !ok {
		return nil
	}
	return col.err
}

// Dependencies returns a copy of the field names a computed column
// references, nil for plain, unknown, or uncompilable columns.
func (c *Calculator) Dependencies(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.byName[name]
	if !ok || col.compiled == nil {
		return nil
	}

	deps := make([]string, len(col.compiled.Dependencies))
	copy(deps, col.compiled.Dependencies)
	return deps
}

// MaxComputedRows returns the configured row ceiling.
func (c *Calculator) MaxComputedRows() int {
	return c.options.MaxComputedRows
}

// compileCode extracts the taxonomy code from a compile error, the
// empty code when the failure is outside the taxonomy (input limits).
func compileCode(err error) ast.Code {
	var facadeErr *formula.Error
	if errors.As(err, &facadeErr) {
		return facadeErr.Code()
	}
	return ""
}
