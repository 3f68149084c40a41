// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Defaults for the monitor.
const (
	defaultAddr             = ":9090"
	defaultBackendURL       = "http://localhost:8000"
	defaultPollInterval     = 30
	defaultLightTimeoutMS   = 5_000
	defaultHeavyTimeoutMS   = 10_000
	defaultJournalCapacity  = 1_000
	defaultTriggerQueueSize = 16
	defaultMaxLogsLimit     = 1_000
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// BackendURL is the base URL of the monitored website-builder backend.
	BackendURL string `koanf:"backend_url"`

	// PollIntervalSeconds sets how often a scheduled health check runs.
	PollIntervalSeconds int `koanf:"poll_interval_seconds"`

	// LightProbeTimeoutMS bounds the lightweight probes (liveness, diagnostics).
	LightProbeTimeoutMS int `koanf:"light_probe_timeout_ms"`

	// HeavyProbeTimeoutMS bounds the heavier probes (general health, capability listing).
	HeavyProbeTimeoutMS int `koanf:"heavy_probe_timeout_ms"`

	// JournalCapacity caps the in-memory activity journal.
	JournalCapacity int `koanf:"journal_capacity"`

	// TriggerQueueSize bounds the pending-check trigger queue.
	TriggerQueueSize int `koanf:"trigger_queue_size"`

	// MaxLogsLimit caps GET /logs?limit.
	MaxLogsLimit int `koanf:"max_logs_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                defaultAddr,
		BackendURL:          defaultBackendURL,
		PollIntervalSeconds: defaultPollInterval,
		LightProbeTimeoutMS: defaultLightTimeoutMS,
		HeavyProbeTimeoutMS: defaultHeavyTimeoutMS,
		JournalCapacity:     defaultJournalCapacity,
		TriggerQueueSize:    defaultTriggerQueueSize,
		MaxLogsLimit:        defaultMaxLogsLimit,
	}
}
