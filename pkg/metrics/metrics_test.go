package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewManagerRegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewManager(
		WithNamespace("vigiltest"),
		WithSubsystem("monitor"),
		WithPrometheusRegistry(reg),
	)
	if m == nil {
		t.Fatal("expected a manager")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected registered metrics")
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
		if !strings.HasPrefix(f.GetName(), "vigiltest_monitor_") {
			t.Errorf("metric %s missing namespace prefix", f.GetName())
		}
	}

	for _, want := range []string{
		"vigiltest_monitor_checks_total",
		"vigiltest_monitor_check_failures_total",
		"vigiltest_monitor_check_duration_milliseconds",
		"vigiltest_monitor_server_status",
		"vigiltest_monitor_response_time_milliseconds",
		"vigiltest_monitor_journal_entries",
		"vigiltest_monitor_trigger_queue_size",
	} {
		if !names[want] {
			t.Errorf("expected metric %s to be registered", want)
		}
	}
}

func TestGlobalHelpersDoNotPanic(t *testing.T) {
	RecordCheck(12.5)
	RecordCheckFailure()
	RecordProbeFailure("liveness")
	RecordProbeLatency("health", 3.2)
	UpdateServerStatus(StatusCodeOperational)
	UpdateServerStatus(StatusCodeDown)
	UpdateResponseTime(42)
	UpdateBackendCounts(7, 3, 12)
	UpdateJournalSize(4)
	UpdateJournalCapacity(1000)
	RecordJournalEviction()
	RecordJournalClear()
	UpdateTriggerQueueSize(1, 16)
	UpdateTriggerQueueCapacity(16)
	RecordTriggerEnqueue("manual")
	RecordTriggerEnqueueError()
	RecordHTTPRequest("status", "GET", "200")
	RecordHTTPRequestDuration("status", "GET", "200", 1.2)
	UpdateSystemMemoryUsage(1 << 20)
	UpdateSystemGoroutineCount(10)
	RecordSystemGCPauseTime(0.1)
}

func TestGetRegistry(t *testing.T) {
	reg := GetRegistry()
	if reg == nil {
		t.Fatal("expected the custom registry")
	}

	// The global manager registers on the custom registry at init time.
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if strings.HasPrefix(f.GetName(), "vigil_monitor_") {
			found = true
			break
		}
	}
	if !found {
		t.Error("expected vigil_monitor_* metrics on the custom registry")
	}
}

func TestStatusCodes(t *testing.T) {
	if StatusCodeOperational != 0 || StatusCodeDegraded != 1 || StatusCodeDown != 2 {
		t.Error("status gauge encoding changed; dashboards depend on these values")
	}
}
