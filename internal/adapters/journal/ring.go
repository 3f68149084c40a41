package journal

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statuskit/vigil/internal/domain/model"
	"github.com/statuskit/vigil/pkg/metrics"
)

// Default journal configuration constants.
const (
	defaultCapacity = 1000
)

// RingJournal implements Journal with a fixed-capacity ring buffer.
// Inserting when full overwrites the oldest entry; no slicing or
// reallocation happens after construction.
type RingJournal struct {
	mu       sync.RWMutex
	capacity int
	entries  []Entry
	next     int // index the next entry is written to
	count    int
}

// NewRingJournal creates a ring journal with configuration options.
func NewRingJournal(opts ...Option) *RingJournal {
	j := &RingJournal{
		capacity: defaultCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(j)
	}

	j.entries = make([]Entry, j.capacity)

	metrics.UpdateJournalCapacity(j.capacity)
	metrics.UpdateJournalSize(0)

	return j
}

// Append constructs and inserts a new entry, evicting the oldest when full.
func (j *RingJournal) Append(ctx context.Context, level model.LogLevel, message, source string, details map[string]any) Entry {
	e := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
		Source:    source,
		Details:   details,
	}

	j.mu.Lock()
	if j.count == len(j.entries) {
		metrics.RecordJournalEviction()
	} else {
		j.count++
	}
	j.entries[j.next] = e
	j.next = (j.next + 1) % len(j.entries)
	size := j.count
	j.mu.Unlock()

	metrics.UpdateJournalSize(size)
	return e
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (j *RingJournal) Recent(ctx context.Context, n int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if n <= 0 || n > j.count {
		n = j.count
	}
	out := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		// Walk backwards from the most recent write position.
		idx := (j.next - 1 - i + len(j.entries)*2) % len(j.entries)
		out = append(out, j.entries[idx])
	}
	return out
}

// Len returns the current number of entries.
func (j *RingJournal) Len(ctx context.Context) int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.count
}

// Clear removes every entry.
func (j *RingJournal) Clear(ctx context.Context) {
	j.mu.Lock()
	for i := range j.entries {
		j.entries[i] = Entry{}
	}
	j.next = 0
	j.count = 0
	j.mu.Unlock()

	metrics.RecordJournalClear()
	metrics.UpdateJournalSize(0)
}

// Capacity returns the configured entry cap.
func (j *RingJournal) Capacity() int {
	return len(j.entries)
}
