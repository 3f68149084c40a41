// Package journal defines the activity journal interface and errors.
//
// The journal is the user-facing activity trail: a bounded, ordered,
// newest-first sequence of log entries, independent of how (or whether)
// anything renders it. It is in-memory only and dies with the process.
package journal

import (
	"context"

	"github.com/statuskit/vigil/internal/domain/model"
)

// Entry is the record type stored by the journal.
type Entry = model.LogEntry

// Journal provides append/read access to the bounded activity trail.
type Journal interface {
	// Append constructs an entry with a fresh id and current timestamp and
	// inserts it as the newest record, evicting the oldest when full.
	// The constructed entry is returned.
	Append(ctx context.Context, level model.LogLevel, message, source string, details map[string]any) Entry

	// Recent returns up to n entries, newest first. n <= 0 returns all.
	Recent(ctx context.Context, n int) []Entry

	// Len returns the current number of entries.
	Len(ctx context.Context) int

	// Clear removes every entry. It is the only operation that resets the
	// sequence; callers append their own post-clear entry.
	Clear(ctx context.Context)

	// Capacity returns the configured entry cap.
	Capacity() int
}
