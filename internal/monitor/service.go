// Package monitor provides the core service that owns the health snapshot,
// drives the check schedule, and records the activity journal.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/statuskit/vigil/internal/adapters/backend"
	"github.com/statuskit/vigil/internal/adapters/journal"
	triggerqueue "github.com/statuskit/vigil/internal/adapters/mq/queue"
	"github.com/statuskit/vigil/internal/adapters/mq/runner"
	"github.com/statuskit/vigil/internal/domain/model"
	"github.com/statuskit/vigil/pkg/logger"
)

// Default service configuration constants.
const (
	defaultPollInterval    = 30 * time.Second
	defaultJournalCapacity = 1000
	defaultQueueSize       = 16
	runnerShutdownTimeout  = 5 * time.Second
)

// Service implements the API dependencies for the status monitor.
type Service struct {
	mu sync.RWMutex

	// Core components
	client   backend.Client
	journal  journal.Journal
	triggers triggerqueue.Queue
	runner   *runner.Runner

	// Configuration
	backendURL      string
	pollInterval    time.Duration
	lightTimeout    time.Duration
	heavyTimeout    time.Duration
	journalCapacity int
	queueSize       int

	// State. The snapshot is replaced wholesale by each check cycle.
	snapshot model.HealthSnapshot
	lastErr  string
	checking bool
	hydrated bool
	started  bool

	cancel context.CancelFunc

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBackendURL sets the monitored backend base URL.
func WithBackendURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.backendURL = url
		}
	}
}

// WithPollInterval sets the scheduled check interval.
func WithPollInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.pollInterval = interval
		}
	}
}

// WithProbeTimeouts sets the light (liveness, diagnostics) and heavy
// (health, capability listing) probe timeouts.
func WithProbeTimeouts(light, heavy time.Duration) Option {
	return func(s *Service) {
		if light > 0 {
			s.lightTimeout = light
		}
		if heavy > 0 {
			s.heavyTimeout = heavy
		}
	}
}

// WithJournalCapacity caps the activity journal.
func WithJournalCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.journalCapacity = capacity
		}
	}
}

// WithTriggerQueueSize bounds the pending-check queue.
func WithTriggerQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithClient injects a backend client, replacing the one built from
// WithBackendURL and WithProbeTimeouts.
func WithClient(c backend.Client) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		backendURL:      "http://localhost:8000",
		pollInterval:    defaultPollInterval,
		lightTimeout:    5 * time.Second,
		heavyTimeout:    10 * time.Second,
		journalCapacity: defaultJournalCapacity,
		queueSize:       defaultQueueSize,
		snapshot:        model.NewHealthSnapshot(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes components, records the startup journal entries, and
// begins scheduled checking with an immediate first check.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("monitor")
	}

	s.logger.Info(ctx, "starting status monitor",
		logger.String("backend", s.backendURL),
		logger.Any("interval", s.pollInterval),
	)

	s.journal = journal.NewRingJournal(
		journal.WithCapacity(s.journalCapacity),
	)
	if s.client == nil {
		s.client = backend.NewHTTPClient(
			backend.WithBaseURL(s.backendURL),
			backend.WithLightTimeout(s.lightTimeout),
			backend.WithHeavyTimeout(s.heavyTimeout),
		)
	}
	s.triggers = triggerqueue.NewInMemoryQueue(
		triggerqueue.WithCapacity(s.queueSize),
	)
	s.runner = runner.New(s.triggers, s, runner.WithLogger(s.logger.Named("runner")))

	// Safe to render time-dependent values from here on.
	s.hydrated = true

	// Exactly three startup entries.
	s.journal.Append(ctx, model.LevelInfo, "Status monitor started", model.SourceSystem, nil)
	s.journal.Append(ctx, model.LevelInfo, fmt.Sprintf("Watching backend at %s", s.backendURL), model.SourceSystem, nil)
	s.journal.Append(ctx, model.LevelInfo, fmt.Sprintf("Scheduled checks every %s", s.pollInterval), model.SourceSystem, nil)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	go s.runner.Run(runCtx)
	go s.scheduleLoop(runCtx)

	// Immediate first check.
	s.triggers.Enqueue(ctx, model.NewTrigger(model.TriggerStartup))

	s.started = true
	return nil
}

// Stop cancels the schedule, closes the queue, and waits for the in-flight
// check to finish. The mutex is released before waiting on the runner: the
// in-flight check needs it to record its result.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	cancel := s.cancel
	triggers := s.triggers
	run := s.runner
	log := s.logger
	s.mu.Unlock()

	ctx := context.Background()
	log.Info(ctx, "stopping status monitor")

	if cancel != nil {
		cancel()
	}
	if triggers != nil {
		_ = triggers.Close()
	}
	if run != nil {
		shutdownCtx, cancelWait := context.WithTimeout(ctx, runnerShutdownTimeout)
		defer cancelWait()
		if err := run.Shutdown(shutdownCtx); err != nil {
			log.Warn(ctx, "runner did not stop cleanly", logger.Error(err))
		}
	}

	log.Info(ctx, "status monitor stopped")
}

// scheduleLoop enqueues an interval trigger every poll interval, regardless
// of prior outcomes, until the context is cancelled.
func (s *Service) scheduleLoop(ctx context.Context) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ok := s.triggers.Enqueue(ctx, model.NewTrigger(model.TriggerInterval)); !ok {
				s.logger.Warn(ctx, "scheduled check dropped: trigger queue full")
			}
		}
	}
}

// Refresh requests an immediate manual check. The trigger queues behind any
// in-flight check rather than racing it; false means backpressure.
func (s *Service) Refresh(ctx context.Context) bool {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return false
	}
	return s.triggers.Enqueue(ctx, model.NewTrigger(model.TriggerManual))
}

// Status returns the current snapshot and the shared flags around it.
func (s *Service) Status() model.StatusReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.StatusReport{
		Snapshot: s.snapshot,
		Err:      s.lastErr,
		Checking: s.checking,
		Hydrated: s.hydrated,
	}
}

// Logs returns up to n journal entries, newest first. n <= 0 returns all.
func (s *Service) Logs(ctx context.Context, n int) []journal.Entry {
	if s.journal == nil {
		return nil
	}
	return s.journal.Recent(ctx, n)
}

// ClearLogs empties the journal and records the action as its first entry.
func (s *Service) ClearLogs(ctx context.Context) {
	if s.journal == nil {
		return
	}
	s.journal.Clear(ctx)
	s.journal.Append(ctx, model.LevelInfo, "Activity log cleared", model.SourceUserAction, nil)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"hydrated":         s.hydrated,
		"checking":         s.checking,
		"backend_url":      s.backendURL,
		"poll_interval":    s.pollInterval.String(),
		"journal_capacity": s.journalCapacity,
	}

	if s.started {
		stats["queue_length"] = s.triggers.Len(ctx)
		stats["journal_entries"] = s.journal.Len(ctx)
		stats["server_health"] = string(s.snapshot.Status)
		stats["response_time_ms"] = s.snapshot.ResponseTimeMS
		stats["last_checked"] = s.snapshot.LastChecked
	}

	return stats
}
