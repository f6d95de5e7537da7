// File: logger_test.go
// Title: Unit Tests for the Structured Logger
// Description: Tests level filtering, field scoping across clones, text
//              and JSON output shapes, severity-based error logging, and
//              the operation timer.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial test implementation

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewWithConfig(Config{
		Level:  level,
		Format: format,
		Output: buf,
		Name:   "test",
	})
	return logger, buf
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatText)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")
	logger.Error("visible error")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("output contains filtered entries:\n%s", output)
	}
	if !strings.Contains(output, "visible warn") || !strings.Contains(output, "visible error") {
		t.Errorf("output missing expected entries:\n%s", output)
	}
}

func TestTextOutputShape(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	logger.Debug("compiled formula", Fields{"tokens": 5, "source": "a b"})

	line := buf.String()
	for _, want := range []string{"[DBG]", "[test]", "compiled formula", "tokens=5", `source="a b"`} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("line must end with newline")
	}
}

func TestTextFieldOrdering(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	logger.Info("pass", Fields{"b": 2, "a": 1, "c": 3})

	line := buf.String()
	ai := strings.Index(line, "a=1")
	bi := strings.Index(line, "b=2")
	ci := strings.Index(line, "c=3")
	if ai < 0 || bi < 0 || ci < 0 || !(ai < bi && bi < ci) {
		t.Errorf("fields not sorted deterministically: %q", line)
	}
}

func TestJSONOutput(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)

	logger.Info("render pass", Fields{"rows": 12})

	var payload map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if payload["level"] != "INFO" {
		t.Errorf("level = %v; want INFO", payload["level"])
	}
	if payload["message"] != "render pass" {
		t.Errorf("message = %v", payload["message"])
	}
	if payload["logger"] != "test" {
		t.Errorf("logger = %v", payload["logger"])
	}

	fields, ok := payload["fields"].(map[string]interface{})
	if !ok {
		t.Fatalf("fields missing: %v", payload)
	}
	if fields["rows"] != float64(12) {
		t.Errorf("fields.rows = %v; want 12", fields["rows"])
	}
}

func TestWithFieldIsolation(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatText)

	scoped := logger.WithField("component", "parser")
	scoped.Info("scoped entry")
	logger.Info("plain entry")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "component=parser") {
		t.Errorf("scoped line missing field: %q", lines[0])
	}
	if strings.Contains(lines[1], "component=parser") {
		t.Errorf("parent logger polluted by clone: %q", lines[1])
	}
}

func TestWithLevelClone(t *testing.T) {
	logger, buf := newBufferLogger(LevelError, FormatText)

	verbose := logger.WithLevel(LevelDebug)
	verbose.Debug("from clone")
	logger.Debug("from parent")

	output := buf.String()
	if !strings.Contains(output, "from clone") {
		t.Errorf("clone should log debug: %q", output)
	}
	if strings.Contains(output, "from parent") {
		t.Errorf("parent level must stay unchanged: %q", output)
	}
}

func TestLogErrorSeverityMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{
			"low severity logs warn",
			tlberror.New("bad formula").WithCode(tlberror.CodeInvalidInput),
			"[WRN]",
		},
		{
			"medium severity logs error",
			tlberror.New("missing file").WithCode(tlberror.CodeConfigError),
			"[ERR]",
		},
		{
			"plain error logs error",
			bytes.ErrTooLarge,
			"[ERR]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatText)
			logger.LogError(tt.err)
			if !strings.Contains(buf.String(), tt.wantLevel) {
				t.Errorf("output %q missing level %q", buf.String(), tt.wantLevel)
			}
		})
	}
}

func TestLogErrorIncludesCode(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatText)

	logger.LogError(tlberror.New("boom").WithCode(tlberror.CodeFormulaCompile).WithOperation("compile"))

	output := buf.String()
	for _, want := range []string{"FORMULA_COMPILE", "operation=compile", "boom"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}
}

func TestTimerStop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("compile-batch").WithField("columns", 3)
	elapsed := timer.Stop()

	if elapsed < 0 {
		t.Errorf("elapsed = %v; want >= 0", elapsed)
	}

	output := buf.String()
	for _, want := range []string{"compile-batch completed", "columns=3", "duration="} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q missing %q", output, want)
		}
	}

	// Second stop must not log again.
	buf.Reset()
	timer.Stop()
	if buf.Len() != 0 {
		t.Errorf("second Stop() produced output: %q", buf.String())
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatText)

	timer := logger.StartTimer("render-pass")
	timer.StopWithError(tlberror.New("row limit hit"))

	output := buf.String()
	if !strings.Contains(output, "render-pass failed") {
		t.Errorf("output %q missing failure entry", output)
	}
	if !strings.Contains(output, "[ERR]") {
		t.Errorf("failure entry should log at error level: %q", output)
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, buf := newBufferLogger(LevelInfo, FormatText)
	SetDefault(logger)

	Info("through default")
	if !strings.Contains(buf.String(), "through default") {
		t.Errorf("default logger not used: %q", buf.String())
	}

	SetDefault(nil)
	if GetDefault() != logger {
		t.Error("SetDefault(nil) must be ignored")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" Warning ", LevelWarn, false},
		{"err", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v; want %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{"console", FormatText, false},
		{"xml", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v; wantErr %v", tt.input, err, tt.wantErr)
			}
			if format != tt.expected {
				t.Errorf("ParseFormat(%q) = %v; want %v", tt.input, format, tt.expected)
			}
		})
	}
}
