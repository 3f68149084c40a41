// Package queue defines the contract for enqueuing and consuming check
// triggers.
//
// Scheduled ticks and manual refreshes go through the same bounded queue so
// that a single runner executes checks serially; concurrent result writes
// cannot interleave.
package queue

import (
	"context"
	"sync"

	"github.com/statuskit/vigil/internal/domain/model"
	"github.com/statuskit/vigil/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultCapacity = 16
)

// Trigger is the payload type flowing through the queue.
type Trigger = model.Trigger

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a trigger to the queue.
	// Returns false if the queue is full and the trigger was not enqueued.
	Enqueue(ctx context.Context, t Trigger) bool

	// Dequeue returns a channel that will receive triggers as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Trigger

	// Len returns the current number of pending triggers.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue. After closing, no new triggers
	// can be enqueued and the dequeue channel is closed.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	triggers chan Trigger
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.triggers = make(chan Trigger, q.capacity)

	metrics.UpdateTriggerQueueCapacity(q.capacity)
	metrics.UpdateTriggerQueueSize(0, q.capacity)

	return q
}

// Enqueue adds a trigger to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, t Trigger) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordTriggerEnqueueError()
		return false
	}

	select {
	case q.triggers <- t:
		metrics.RecordTriggerEnqueue(string(t.Reason))
		metrics.UpdateTriggerQueueSize(len(q.triggers), q.capacity)
		return true
	case <-ctx.Done():
		metrics.RecordTriggerEnqueueError()
		return false
	default:
		metrics.RecordTriggerEnqueueError()
		return false // queue is full
	}
}

// Dequeue returns a channel that will receive triggers as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Trigger {
	out := make(chan Trigger)
	go func() {
		defer close(out)
		for t := range q.triggers {
			select {
			case out <- t:
				metrics.UpdateTriggerQueueSize(len(q.triggers), q.capacity)
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of pending triggers.
func (q *InMemoryQueue) Len(ctx context.Context) int {
	return len(q.triggers)
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil // already closed
	}

	close(q.triggers)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
