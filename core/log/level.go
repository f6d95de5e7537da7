// File: level.go
// Title: Log Level Definitions
// Description: Defines the ordered log levels used by the logging package
//              together with parsing and formatting helpers.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial implementation

package log

import (
	"fmt"
	"strings"
)

// Level represents the severity of a log entry. Levels are ordered from
// LevelTrace (most verbose) to LevelFatal.
type Level int

const (
	// LevelTrace logs everything, including per-token engine internals.
	LevelTrace Level = iota

	// LevelDebug logs development information such as compile results.
	LevelDebug

	// LevelInfo logs normal operational messages.
	LevelInfo

	// LevelWarn logs recoverable problems such as rejected formulas.
	LevelWarn

	// LevelError logs failures that abort an operation.
	LevelError

	// LevelFatal logs unrecoverable failures and terminates the process.
	LevelFatal
)

// String returns the uppercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ShortString returns a fixed-width three-letter tag for text output.
func (l Level) ShortString() string {
	switch l {
	case LevelTrace:
		return "TRC"
	case LevelDebug:
		return "DBG"
	case LevelInfo:
		return "INF"
	case LevelWarn:
		return "WRN"
	case LevelError:
		return "ERR"
	case LevelFatal:
		return "FTL"
	default:
		return "???"
	}
}

// IsEnabled reports whether a message at this level passes the given
// minimum level.
func (l Level) IsEnabled(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel converts a level name into a Level. Matching is
// case-insensitive and accepts common aliases ("warning", "err").
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error", "err":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level: %q", level)
	}
}

// AllLevels returns the defined levels in ascending order.
func AllLevels() []Level {
	return []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal}
}

// DefaultLevel returns the level used when nothing is configured.
func DefaultLevel() Level {
	return LevelInfo
}
