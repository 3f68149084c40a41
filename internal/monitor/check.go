package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/statuskit/vigil/internal/adapters/backend"
	"github.com/statuskit/vigil/internal/domain/model"
	"github.com/statuskit/vigil/pkg/logger"
	"github.com/statuskit/vigil/pkg/metrics"
)

// CheckHealth executes one full check cycle: sequential probes, snapshot
// replacement, and journaling. A single failed required probe is terminal
// for the cycle; the next attempt happens at the next trigger.
func (s *Service) CheckHealth(ctx context.Context, t model.Trigger) {
	s.setChecking(true)
	defer s.setChecking(false)

	start := time.Now()
	info, components, err := s.runProbes(ctx)
	elapsed := time.Since(start).Milliseconds()

	s.mu.Lock()
	prev := s.snapshot
	prevErr := s.lastErr

	next := model.HealthSnapshot{
		ResponseTimeMS: elapsed,
		LastChecked:    time.Now(),
	}
	if err != nil {
		next.Status = model.StatusDown
		// Counts are best-effort: keep the last known values rather than
		// resetting them on failure.
		next.ActiveConnections = prev.ActiveConnections
		next.ComponentsAvailable = prev.ComponentsAvailable
		next.ProjectsCreated = prev.ProjectsCreated
		s.lastErr = err.Error()
	} else {
		next.Status = model.StatusOperational
		next.ActiveConnections = info.ActiveConnections
		next.ProjectsCreated = info.ProjectsCreated
		next.ComponentsAvailable = components
		s.lastErr = ""
	}
	s.snapshot = next
	s.mu.Unlock()

	metrics.RecordCheck(float64(elapsed))
	metrics.UpdateResponseTime(elapsed)

	if err != nil {
		metrics.RecordCheckFailure()
		metrics.UpdateServerStatus(metrics.StatusCodeDown)

		// Exactly one Health Monitor entry per completed cycle.
		s.journal.Append(ctx, model.LevelError,
			fmt.Sprintf("Health check failed: %v", err),
			model.SourceHealthMonitor,
			map[string]any{"response_time_ms": elapsed},
		)
		// One extra System entry on the transition into an outage.
		if prevErr == "" {
			s.journal.Append(ctx, model.LevelError,
				"Lost connection to backend", model.SourceSystem, nil)
		}

		s.logger.Warn(ctx, "health check failed",
			logger.String("reason", string(t.Reason)),
			logger.Int64("response_time_ms", elapsed),
			logger.Error(err),
		)
		return
	}

	metrics.UpdateServerStatus(metrics.StatusCodeOperational)
	metrics.UpdateBackendCounts(components, info.ActiveConnections, info.ProjectsCreated)

	s.journal.Append(ctx, model.LevelSuccess,
		"Health check passed", model.SourceHealthMonitor,
		map[string]any{
			"response_time_ms":     elapsed,
			"components_available": components,
			"active_connections":   info.ActiveConnections,
		},
	)

	s.logger.Debug(ctx, "health check passed",
		logger.String("reason", string(t.Reason)),
		logger.Int64("response_time_ms", elapsed),
		logger.Int("components", components),
	)
}

// runProbes executes the probe sequence. Each probe only runs if the prior
// one succeeded; the optional diagnostics probe never fails the cycle.
func (s *Service) runProbes(ctx context.Context) (backend.HealthInfo, int, error) {
	if err := s.client.Ping(ctx); err != nil {
		return backend.HealthInfo{}, 0, fmt.Errorf("liveness probe: %w", err)
	}

	info, err := s.client.Health(ctx)
	if err != nil {
		return backend.HealthInfo{}, 0, fmt.Errorf("health probe: %w", err)
	}

	components, err := s.client.ListComponents(ctx)
	if err != nil {
		return backend.HealthInfo{}, 0, fmt.Errorf("capability probe: %w", err)
	}

	// Best-effort diagnostics; a failure here is swallowed.
	if _, derr := s.client.DetailedHealth(ctx); derr != nil {
		s.logger.Warn(ctx, "diagnostics probe failed; result omitted", logger.Error(derr))
	}

	return info, components, nil
}

func (s *Service) setChecking(v bool) {
	s.mu.Lock()
	s.checking = v
	s.mu.Unlock()
}
