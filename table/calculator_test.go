// File: calculator_test.go
// Title: Table Column Calculator Tests
// Description: Unit tests for the calculator covering column
//              validation, render passes, compile error synthesis, the
//              self-reference guard, and the row ceiling.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-10
// Modified: 2026-08-10
//
// Change History:
// - 2026-08-10 v0.1.0: Initial calculator tests

package table

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula"
	"github.com/campfirium/obsidian-tile-line-base-sub002/formula/ast"
)

func newTestCalculator(t *testing.T, opts ...Options) *Calculator {
	t.Helper()
	calc, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return calc
}

func TestCalculator_Defaults(t *testing.T) {
	calc := newTestCalculator(t)
	if calc.MaxComputedRows() != 5000 {
		t.Errorf("MaxComputedRows() = %d; want 5000", calc.MaxComputedRows())
	}

	custom := newTestCalculator(t, Options{MaxComputedRows: 100})
	if custom.MaxComputedRows() != 100 {
		t.Errorf("MaxComputedRows() = %d; want 100", custom.MaxComputedRows())
	}
}

func TestCalculator_SetColumnsValidation(t *testing.T) {
	tests := []struct {
		name    string
		specs   []ColumnSpec
		wantErr bool
	}{
		{
			"plain and computed mix",
			[]ColumnSpec{
				{Name: "name"},
				{Name: "total", Formula: "{price} * {qty}"},
			},
			false,
		},
		{
			"blank name rejected",
			[]ColumnSpec{{Name: "   ", Formula: "1"}},
			true,
		},
		{
			"duplicate name rejected",
			[]ColumnSpec{
				{Name: "a", Formula: "1"},
				{Name: "a", Formula: "2"},
			},
			true,
		},
		{
			"empty set allowed",
			nil,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t)
			err := calc.SetColumns(tt.specs)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetColumns() error = %v; wantErr %v", err, tt.wantErr)
			}
			if err != nil && !tlberror.HasCode(err, tlberror.CodeTableInvalid) {
				t.Errorf("error %v missing code %v", err, tlberror.CodeTableInvalid)
			}
		})
	}
}

func TestCalculator_SetColumnsErrorKeepsPreviousSet(t *testing.T) {
	calc := newTestCalculator(t)

	if err := calc.SetColumns([]ColumnSpec{{Name: "total", Formula: "1 + 1"}}); err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}
	if err := calc.SetColumns([]ColumnSpec{{Name: " "}}); err == nil {
		t.Fatal("blank column name should fail")
	}

	if got := calc.ComputedColumns(); !reflect.DeepEqual(got, []string{"total"}) {
		t.Errorf("ComputedColumns() = %v; want previous set [total]", got)
	}
}

func TestCalculator_ComputeRows(t *testing.T) {
	calc := newTestCalculator(t)
	err := calc.SetColumns([]ColumnSpec{
		{Name: "name"},
		{Name: "total", Formula: "{price} * {qty}"},
		{Name: "label", Formula: `{name} + "!"`},
	})
	if err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	rows := []map[string]interface{}{
		{"name": "Widget", "price": "2.5", "qty": 4},
		{"name": "Gadget", "price": "10", "qty": "3"},
	}

	pass := calc.ComputeRows(rows)
	if pass.Skipped {
		t.Fatalf("pass skipped: %s", pass.SkipReason)
	}
	if len(pass.Rows) != 2 {
		t.Fatalf("len(Rows) = %d; want 2", len(pass.Rows))
	}

	first := pass.Rows[0]
	if len(first) != 2 {
		t.Errorf("computed cells per row = %d; want 2", len(first))
	}
	if _, ok := first["name"]; ok {
		t.Error("plain column should not produce a result")
	}
	if got := first["total"].Value; got != "10" {
		t.Errorf("total = %q; want %q", got, "10")
	}
	if got := first["label"].Value; got != "Widget!" {
		t.Errorf("label = %q; want %q", got, "Widget!")
	}
	if got := pass.Rows[1]["total"].Value; got != "30" {
		t.Errorf("total = %q; want %q", got, "30")
	}
}

func TestCalculator_CompileErrorSynthesis(t *testing.T) {
	calc := newTestCalculator(t)

	// A broken formula must not fail column setup.
	err := calc.SetColumns([]ColumnSpec{
		{Name: "ok", Formula: "1 + 1"},
		{Name: "broken", Formula: "(1 + 2"},
	})
	if err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	if calc.ColumnError("ok") != nil {
		t.Errorf("ColumnError(ok) = %v; want nil", calc.ColumnError("ok"))
	}
	if calc.ColumnError("broken") == nil {
		t.Fatal("ColumnError(broken) = nil; want stored compile error")
	}

	pass := calc.ComputeRows([]map[string]interface{}{{}, {}})
	for i, row := range pass.Rows {
		cell := row["broken"]
		if cell.OK() {
			t.Fatalf("row %d: broken cell should fail", i)
		}
		if cell.Value != formula.Sentinel {
			t.Errorf("row %d: value = %q; want %q", i, cell.Value, formula.Sentinel)
		}
		if cell.Err.Code != ast.CodeUnmatchedParen {
			t.Errorf("row %d: code = %v; want %v", i, cell.Err.Code, ast.CodeUnmatchedParen)
		}
		if row["ok"].Value != "2" {
			t.Errorf("row %d: healthy column = %q; want %q", i, row["ok"].Value, "2")
		}
	}
}

func TestCalculator_SelfReferenceGuard(t *testing.T) {
	calc := newTestCalculator(t)
	err := calc.SetColumns([]ColumnSpec{
		{Name: "total", Formula: "{total} + 1"},
		{Name: "twice", Formula: "{base} * 2"},
	})
	if err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	colErr := calc.ColumnError("total")
	if colErr == nil {
		t.Fatal("self-referential column should store an error")
	}
	var evalErr *ast.EvalError
	if !errors.As(colErr, &evalErr) || evalErr.Code != ast.CodeSelfReference {
		t.Errorf("ColumnError(total) = %v; want SELF_REFERENCE error", colErr)
	}

	cell := calc.ComputeCell("total", map[string]interface{}{"total": "5"})
	if cell.OK() {
		t.Fatal("self-referential cell should fail")
	}
	if cell.Err.Code != ast.CodeSelfReference {
		t.Errorf("code = %v; want %v", cell.Err.Code, ast.CodeSelfReference)
	}
	if cell.Value != formula.Sentinel {
		t.Errorf("value = %q; want %q", cell.Value, formula.Sentinel)
	}

	// The sibling column is unaffected.
	sibling := calc.ComputeCell("twice", map[string]interface{}{"base": "4"})
	if !sibling.OK() || sibling.Value != "8" {
		t.Errorf("twice = %v; want 8", sibling)
	}

	// Dependencies stay introspectable on disabled columns.
	if got := calc.Dependencies("total"); !reflect.DeepEqual(got, []string{"total"}) {
		t.Errorf("Dependencies(total) = %v; want [total]", got)
	}
}

func TestCalculator_RowCeiling(t *testing.T) {
	calc := newTestCalculator(t, Options{MaxComputedRows: 2})
	if err := calc.SetColumns([]ColumnSpec{{Name: "n", Formula: "1"}}); err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	over := []map[string]interface{}{{}, {}, {}}
	pass := calc.ComputeRows(over)
	if !pass.Skipped {
		t.Fatal("pass over the ceiling should be skipped")
	}
	if pass.Rows != nil {
		t.Errorf("skipped pass Rows = %v; want nil", pass.Rows)
	}
	if !strings.Contains(pass.SkipReason, "exceeds") {
		t.Errorf("SkipReason = %q; want ceiling explanation", pass.SkipReason)
	}

	atLimit := []map[string]interface{}{{}, {}}
	pass = calc.ComputeRows(atLimit)
	if pass.Skipped {
		t.Errorf("pass at the ceiling should run, skipped: %s", pass.SkipReason)
	}
	if len(pass.Rows) != 2 {
		t.Errorf("len(Rows) = %d; want 2", len(pass.Rows))
	}
}

func TestCalculator_ComputeCell(t *testing.T) {
	calc := newTestCalculator(t)
	err := calc.SetColumns([]ColumnSpec{
		{Name: "plain"},
		{Name: "sum", Formula: "{a} + {b}"},
	})
	if err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	cell := calc.ComputeCell("sum", map[string]interface{}{"a": "2", "b": "3"})
	if cell == nil || cell.Value != "5" {
		t.Errorf("ComputeCell(sum) = %v; want 5", cell)
	}

	if calc.ComputeCell("plain", nil) != nil {
		t.Error("plain column should return nil")
	}
	if calc.ComputeCell("ghost", nil) != nil {
		t.Error("unknown column should return nil")
	}
}

func TestCalculator_ComputedColumnsOrder(t *testing.T) {
	calc := newTestCalculator(t)
	err := calc.SetColumns([]ColumnSpec{
		{Name: "z", Formula: "1"},
		{Name: "plain"},
		{Name: "a", Formula: "2"},
	})
	if err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	want := []string{"z", "a"}
	if got := calc.ComputedColumns(); !reflect.DeepEqual(got, want) {
		t.Errorf("ComputedColumns() = %v; want %v", got, want)
	}
}

func TestCalculator_DependenciesReturnsCopy(t *testing.T) {
	calc := newTestCalculator(t)
	if err := calc.SetColumns([]ColumnSpec{{Name: "s", Formula: "{a} + {b}"}}); err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	deps := calc.Dependencies("s")
	deps[0] = "mutated"

	if got := calc.Dependencies("s"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Dependencies(s) = %v; want [a b]", got)
	}
}

func TestCalculator_PassMetadata(t *testing.T) {
	calc := newTestCalculator(t)
	if err := calc.SetColumns([]ColumnSpec{{Name: "n", Formula: "1"}}); err != nil {
		t.Fatalf("SetColumns() error = %v", err)
	}

	first := calc.ComputeRows([]map[string]interface{}{{}})
	second := calc.ComputeRows([]map[string]interface{}{{}})

	if first.PassID == "" || second.PassID == "" {
		t.Error("pass IDs should be set")
	}
	if first.PassID == second.PassID {
		t.Error("pass IDs should be unique per pass")
	}
	if first.StartedAt.IsZero() {
		t.Error("StartedAt should be set")
	}
	if first.Duration < 0 {
		t.Errorf("Duration = %v; want non-negative", first.Duration)
	}
}

func BenchmarkCalculator_ComputeRows(b *testing.B) {
	calc, err := New()
	if err != nil {
		b.Fatal(err)
	}
	err = calc.SetColumns([]ColumnSpec{
		{Name: "total", Formula: "({price} - {discount}) * {qty}"},
		{Name: "label", Formula: `{name} + " x" + {qty}`},
	})
	if err != nil {
		b.Fatal(err)
	}

	rows := make([]map[string]interface{}, 100)
	for i := range rows {
		rows[i] = map[string]interface{}{
			"name":     "Widget",
			"price":    "19.99",
			"discount": "4.99",
			"qty":      3,
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pass := calc.ComputeRows(rows)
		if pass.Skipped {
			b.Fatal(pass.SkipReason)
		}
	}
}
