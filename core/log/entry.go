// File: entry.go
// Title: Log Entry and Structured Fields
// Description: Defines the Entry type passed to formatters and the Fields
//              map used to attach structured key/value data to log calls.
// Author: campfirium
// Version: v0.1.0
// Created: 2026-08-06
// Modified: 2026-08-06
//
// Change History:
// - 2026-08-06 v0.1.0: Initial implementation

package log

import "time"

// Fields holds structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Field creates a Fields map with a single entry.
func Field(key string, value interface{}) Fields {
	return Fields{key: value}
}

// Err creates a Fields map carrying an error under the conventional key.
func Err(err error) Fields {
	if err == nil {
		return Fields{}
	}
	return Fields{"error": err.Error()}
}

// Duration creates a Fields map with a duration rendered via its String form.
func Duration(key string, duration time.Duration) Fields {
	return Fields{key: duration.String()}
}

// Merge returns a new Fields map containing the receiver's entries
// overlaid with the other map's entries.
func (f Fields) Merge(other Fields) Fields {
	merged := make(Fields, len(f)+len(other))
	for k, v := range f {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of the Fields map.
func (f Fields) Clone() Fields {
	cloned := make(Fields, len(f))
	for k, v := range f {
		cloned[k] = v
	}
	return cloned
}

// Entry is a single log record handed to a Formatter.
type Entry struct {
	Timestamp time.Time
	Level     Level
	Message   string
	Logger    string
	Fields    Fields
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(level Level, message string) *Entry {
	return &Entry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Fields:    make(Fields),
	}
}

// WithFields overlays fields onto the entry and returns it for chaining.
func (e *Entry) WithFields(fields Fields) *Entry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(Fields, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}
