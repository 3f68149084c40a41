package queue

import (
	"context"
	"testing"
	"time"

	"github.com/statuskit/vigil/internal/domain/model"
)

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	if !q.Enqueue(ctx, model.NewTrigger(model.TriggerManual)) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	triggers := q.Dequeue(ctx)
	got := <-triggers
	if got.Reason != model.TriggerManual {
		t.Errorf("expected manual trigger, got %v", got.Reason)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if !q.Enqueue(ctx, model.NewTrigger(model.TriggerStartup)) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, model.NewTrigger(model.TriggerInterval)) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, model.NewTrigger(model.TriggerManual)) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_PreservesTriggerOrder(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(4))
	ctx := context.Background()

	reasons := []model.TriggerReason{
		model.TriggerStartup,
		model.TriggerInterval,
		model.TriggerManual,
		model.TriggerInterval,
	}
	for _, r := range reasons {
		if !q.Enqueue(ctx, model.NewTrigger(r)) {
			t.Fatalf("enqueue %v failed", r)
		}
	}

	triggers := q.Dequeue(ctx)
	for i, want := range reasons {
		got := <-triggers
		if got.Reason != want {
			t.Errorf("trigger %d: expected %v, got %v", i, want, got.Reason)
		}
	}
}

func TestInMemoryQueue_Close(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if q.IsClosed() {
		t.Error("expected queue to be open")
	}

	if !q.Enqueue(ctx, model.NewTrigger(model.TriggerManual)) {
		t.Error("expected enqueue to succeed")
	}

	if err := q.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed")
	}

	// Enqueue after close must be rejected.
	if q.Enqueue(ctx, model.NewTrigger(model.TriggerManual)) {
		t.Error("expected enqueue to fail after close")
	}

	// Pending triggers drain, then the channel closes.
	triggers := q.Dequeue(ctx)
	if _, ok := <-triggers; !ok {
		t.Error("expected pending trigger before close")
	}
	select {
	case _, ok := <-triggers:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Error("timed out waiting for channel close")
	}

	// Double close is a no-op.
	if err := q.Close(); err != nil {
		t.Errorf("unexpected double close error: %v", err)
	}
}
