// File: timer.go
// Title: Operation Timing Helper
// Description: Implements a small timer for measuring and logging the
//              duration of operations such as compile batches and table
//              render passes.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial implementation

package log

import "time"

// Timer measures the duration of a named operation and logs the result
// when stopped.
type Timer struct {
	logger    *Logger
	operation string
	start     time.Time
	level     Level
	fields    Fields
	stopped   bool
}

// NewTimer creates and starts a timer. The completion entry is logged at
// debug level unless changed with WithLevel.
func NewTimer(logger *Logger, operation string) *Timer {
	if logger == nil {
		logger = GetDefault()
	}
	return &Timer{
		logger:    logger,
		operation: operation,
		start:     time.Now(),
		level:     LevelDebug,
		fields:    make(Fields),
	}
}

// WithLevel sets the level used for the completion entry.
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField attaches a field to the completion entry.
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}

// Checkpoint logs an intermediate entry with the elapsed time so far.
func (t *Timer) Checkpoint(name string, fields ...Fields) {
	checkpointFields := t.fields.Clone().Merge(Fields{
		"operation":  t.operation,
		"checkpoint": name,
		"elapsed":    t.Elapsed().String(),
	})
	for _, f := range fields {
		checkpointFields = checkpointFields.Merge(f)
	}
	t.logger.log(t.level, t.operation+" checkpoint", []Fields{checkpointFields})
}

// Stop logs the completion entry and returns the total duration.
// Subsequent calls are no-ops returning the elapsed time.
func (t *Timer) Stop() time.Duration {
	elapsed := t.Elapsed()
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	completionFields := t.fields.Clone().Merge(Fields{
		"operation": t.operation,
		"duration":  elapsed.String(),
	})
	t.logger.log(t.level, t.operation+" completed", []Fields{completionFields})

	return elapsed
}

// StopWithError logs the completion entry at error level when err is
// non-nil, otherwise behaves like Stop.
func (t *Timer) StopWithError(err error) time.Duration {
	if err == nil {
		return t.Stop()
	}

	elapsed := t.Elapsed()
	if t.stopped {
		return elapsed
	}
	t.stopped = true

	completionFields := t.fields.Clone().Merge(Fields{
		"operation": t.operation,
		"duration":  elapsed.String(),
		"error":     err.Error(),
	})
	t.logger.log(LevelError, t.operation+" failed", []Fields{completionFields})

	return elapsed
}
