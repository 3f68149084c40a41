package model

import "time"

// LogLevel classifies journal entries.
type LogLevel string

const (
	LevelInfo    LogLevel = "info"
	LevelSuccess LogLevel = "success"
	LevelWarning LogLevel = "warning"
	LevelError   LogLevel = "error"
)

// LogEntry is one immutable record in the activity journal.
// Details is an optional structured payload the journal treats as opaque.
type LogEntry struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Level     LogLevel       `json:"level"`
	Message   string         `json:"message"`
	Source    string         `json:"source"`
	Details   map[string]any `json:"details,omitempty"`
}

// Well-known entry sources.
const (
	SourceHealthMonitor = "Health Monitor"
	SourceSystem        = "System"
	SourceUserAction    = "User Action"
)
