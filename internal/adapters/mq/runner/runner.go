// Package runner drains the trigger queue and executes health checks.
//
// There is deliberately exactly one runner: checks execute strictly one at
// a time, in trigger order, so a scheduled tick and a manual refresh can
// never write interleaved results.
package runner

import (
	"context"
	"fmt"

	"github.com/statuskit/vigil/internal/domain/model"
	"github.com/statuskit/vigil/pkg/logger"
)

// Checker executes one full health check cycle for a trigger.
type Checker interface {
	CheckHealth(ctx context.Context, t model.Trigger)
}

// Queue defines how the runner receives triggers.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Trigger
}

// Runner consumes triggers and runs checks until stopped.
type Runner struct {
	queue   Queue
	checker Checker

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// New creates a runner with configuration options.
func New(queue Queue, checker Checker, opts ...Option) *Runner {
	r := &Runner{
		queue:    queue,
		checker:  checker,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = logger.Get().Named("runner")
	}

	return r
}

// Run starts the runner loop. It returns when the context is cancelled, the
// queue is closed, or Shutdown is called.
func (r *Runner) Run(ctx context.Context) {
	defer close(r.done)

	triggers := r.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.shutdown:
			return
		case t, ok := <-triggers:
			if !ok {
				// Queue closed, runner should stop.
				return
			}
			r.logger.Debug(ctx, "running health check",
				logger.String("reason", string(t.Reason)),
			)
			r.checker.CheckHealth(ctx, t)
		}
	}
}

// Shutdown stops the runner and waits for the in-flight check to finish.
func (r *Runner) Shutdown(ctx context.Context) error {
	close(r.shutdown)

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		r.logger.Warn(ctx, "runner shutdown timed out")
		return fmt.Errorf("runner shutdown timed out: %w", ctx.Err())
	}
}
