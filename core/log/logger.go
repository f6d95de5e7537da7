// File: logger.go
// Title: Structured Logger
// Description: Implements the structured logger used throughout the
//              engine and its tooling. Loggers are cheap immutable values:
//              the WithX methods clone, so a component can carry its own
//              field-scoped logger without affecting the parent. Output
//              passes through a Formatter and is serialized by a mutex
//              shared across clones.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial implementation

package log

import (
	"errors"
	"io"
	"os"
	"sync"

	tlberror "github.com/campfirium/obsidian-tile-line-base-sub002/core/error"
)

// Config configures a logger created with NewWithConfig.
type Config struct {
	// Level is the minimum level that will be written (default LevelInfo).
	Level Level

	// Format selects text or JSON output (default FormatText).
	Format Format

	// Output is the destination writer (default os.Stderr).
	Output io.Writer

	// Name is an optional logger name included in every entry.
	Name string
}

// Logger writes structured log entries. Use New or NewWithConfig to
// create one; the zero value is not usable.
type Logger struct {
	mu        *sync.Mutex
	level     Level
	formatter Formatter
	output    io.Writer
	name      string
	fields    Fields
}

// New creates a logger with default settings: LevelInfo, text format,
// writing to standard error.
func New() *Logger {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a logger from the given configuration, filling
// unset values with defaults.
func NewWithConfig(config Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stderr
	}

	return &Logger{
		mu:        &sync.Mutex{},
		level:     config.Level,
		formatter: GetFormatter(config.Format),
		output:    output,
		name:      config.Name,
		fields:    make(Fields),
	}
}

// clone returns a copy sharing the output writer and its mutex.
func (l *Logger) clone() *Logger {
	return &Logger{
		mu:        l.mu,
		level:     l.level,
		formatter: l.formatter,
		output:    l.output,
		name:      l.name,
		fields:    l.fields.Clone(),
	}
}

// WithField returns a logger that attaches the field to every entry.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	cloned := l.clone()
	cloned.fields[key] = value
	return cloned
}

// WithFields returns a logger that attaches all fields to every entry.
func (l *Logger) WithFields(fields Fields) *Logger {
	cloned := l.clone()
	for k, v := range fields {
		cloned.fields[k] = v
	}
	return cloned
}

// WithName returns a logger with the given name.
func (l *Logger) WithName(name string) *Logger {
	cloned := l.clone()
	cloned.name = name
	return cloned
}

// WithLevel returns a logger with the given minimum level.
func (l *Logger) WithLevel(level Level) *Logger {
	cloned := l.clone()
	cloned.level = level
	return cloned
}

// Level returns the minimum level of the logger.
func (l *Logger) Level() Level {
	return l.level
}

// IsEnabled reports whether entries at the level would be written.
func (l *Logger) IsEnabled(level Level) bool {
	return level.IsEnabled(l.level)
}

// log builds, formats, and writes one entry.
func (l *Logger) log(level Level, message string, fields []Fields) {
	if !l.IsEnabled(level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.WithFields(l.fields)
	for _, f := range fields {
		entry.WithFields(f)
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	_, _ = l.output.Write(data)
	l.mu.Unlock()
}

// Trace logs a message at trace level.
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, fields)
}

// Debug logs a message at debug level.
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, fields)
}

// Info logs a message at info level.
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, fields)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, fields)
}

// Error logs a message at error level.
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, fields)
}

// Fatal logs a message at fatal level and terminates the process.
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, fields)
	os.Exit(1)
}

// LogError logs a structured error at a level derived from its severity.
// Plain errors are logged at error level.
func (l *Logger) LogError(err error, fields ...Fields) {
	if err == nil {
		return
	}

	level := LevelError
	var structured *tlberror.Error
	if errors.As(err, &structured) {
		switch structured.Severity() {
		case tlberror.SeverityLow:
			level = LevelWarn
		case tlberror.SeverityMedium:
			level = LevelError
		case tlberror.SeverityHigh, tlberror.SeverityCritical:
			level = LevelError
		}

		fields = append(fields, Fields{
			"errorCode": structured.Code().String(),
			"severity":  structured.Severity().String(),
		})
		if op := structured.Operation(); op != "" {
			fields = append(fields, Fields{"operation": op})
		}
	}

	l.log(level, err.Error(), fields)
}

// StartTimer starts a named operation timer bound to this logger.
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// Default logger management.
var (
	defaultLogger   *Logger
	defaultLoggerMu sync.RWMutex
)

func init() {
	defaultLogger = New()
}

// GetDefault returns the process-wide default logger.
func GetDefault() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// Package-level convenience functions using the default logger.

// Debug logs to the default logger at debug level.
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs to the default logger at info level.
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs to the default logger at warn level.
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs to the default logger at error level.
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
