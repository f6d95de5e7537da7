// File: format.go
// Title: Log Output Formatters
// Description: Implements the text and JSON formatters that turn log
//              entries into bytes. Text output is human-oriented with
//              deterministically ordered fields; JSON output is one
//              object per line for machine consumption.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial implementation

package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Format identifies an output format.
type Format int

const (
	// FormatText renders entries as a single human-readable line.
	FormatText Format = iota

	// FormatJSON renders entries as one JSON object per line.
	FormatJSON
)

// String returns the lowercase name of the format.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name into a Format (case-insensitive).
func ParseFormat(format string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "console":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format: %q", format)
	}
}

// Formatter converts a log entry into output bytes including the
// trailing newline.
type Formatter interface {
	Format(entry *Entry) ([]byte, error)
}

// TextFormatter renders entries as
// "2026-08-06T10:12:01Z [INF] [name] message key=value".
type TextFormatter struct {
	// TimestampFormat overrides the time layout (default RFC3339).
	TimestampFormat string

	// DisableTimestamp suppresses the leading timestamp, useful in tests.
	DisableTimestamp bool
}

// NewTextFormatter creates a text formatter with default settings.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{TimestampFormat: time.RFC3339}
}

// Format implements the Formatter interface.
func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	var buf bytes.Buffer

	if !f.DisableTimestamp {
		layout := f.TimestampFormat
		if layout == "" {
			layout = time.RFC3339
		}
		buf.WriteString(entry.Timestamp.Format(layout))
		buf.WriteByte(' ')
	}

	buf.WriteByte('[')
	buf.WriteString(entry.Level.ShortString())
	buf.WriteByte(']')

	if entry.Logger != "" {
		buf.WriteString(" [")
		buf.WriteString(entry.Logger)
		buf.WriteByte(']')
	}

	buf.WriteByte(' ')
	buf.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			buf.WriteByte(' ')
			buf.WriteString(k)
			buf.WriteByte('=')
			buf.WriteString(formatFieldValue(entry.Fields[k]))
		}
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// formatFieldValue renders a field value, quoting strings that contain
// spaces so text output stays parseable by eye.
func formatFieldValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		if strings.ContainsAny(v, " \t\n\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case error:
		return fmt.Sprintf("%q", v.Error())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// JSONFormatter renders entries as single-line JSON objects.
type JSONFormatter struct {
	// TimestampFormat overrides the time layout (default RFC3339Nano).
	TimestampFormat string
}

// NewJSONFormatter creates a JSON formatter with default settings.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{TimestampFormat: time.RFC3339Nano}
}

// Format implements the Formatter interface.
func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}

	payload := map[string]interface{}{
		"timestamp": entry.Timestamp.Format(layout),
		"level":     entry.Level.String(),
		"message":   entry.Message,
	}
	if entry.Logger != "" {
		payload["logger"] = entry.Logger
	}
	if len(entry.Fields) > 0 {
		payload["fields"] = entry.Fields
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling log entry: %w", err)
	}

	return append(data, '\n'), nil
}

// GetFormatter returns the formatter implementation for a format.
func GetFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	default:
		return NewTextFormatter()
	}
}
