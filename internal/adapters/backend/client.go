// Package backend implements the HTTP client for the monitored
// website-builder backend's health endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/statuskit/vigil/pkg/metrics"
)

// Probe names, used as metric labels and in error messages.
const (
	ProbeLiveness    = "liveness"
	ProbeHealth      = "health"
	ProbeComponents  = "components"
	ProbeDiagnostics = "diagnostics"
)

// Default client configuration constants.
const (
	defaultBaseURL      = "http://localhost:8000"
	defaultLightTimeout = 5 * time.Second
	defaultHeavyTimeout = 10 * time.Second
)

// HealthInfo carries the best-effort counters reported by GET /health.
type HealthInfo struct {
	ActiveConnections int
	ProjectsCreated   int
}

// Client is the outbound probe surface the monitor checks against.
type Client interface {
	// Ping performs the liveness probe (GET /health/ping).
	Ping(ctx context.Context) error

	// Health performs the general health probe (GET /health).
	Health(ctx context.Context) (HealthInfo, error)

	// ListComponents performs the capability probe (POST /list_components)
	// and returns the number of available components.
	ListComponents(ctx context.Context) (int, error)

	// DetailedHealth performs the optional diagnostics probe
	// (GET /health/detailed). Its result is informational only.
	DetailedHealth(ctx context.Context) (map[string]any, error)
}

// HTTPClient implements Client over net/http with per-probe timeouts.
type HTTPClient struct {
	baseURL      string
	lightTimeout time.Duration
	heavyTimeout time.Duration
	httpClient   *http.Client
}

// NewHTTPClient creates a backend client with configuration options.
func NewHTTPClient(opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:      defaultBaseURL,
		lightTimeout: defaultLightTimeout,
		heavyTimeout: defaultHeavyTimeout,
		httpClient:   &http.Client{},
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// pingResponse tolerates both {"message":"pong"} and {"status":"pong"} shapes.
type pingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Ping performs the liveness probe.
func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp pingResponse
	if err := c.getJSON(ctx, ProbeLiveness, "/health/ping", c.lightTimeout, &resp); err != nil {
		return err
	}
	ack := strings.ToLower(resp.Status + " " + resp.Message)
	if !strings.Contains(ack, "pong") {
		metrics.RecordProbeFailure(ProbeLiveness)
		return fmt.Errorf("%w: %s: no pong acknowledgement", ErrBadPayload, ProbeLiveness)
	}
	return nil
}

type healthResponse struct {
	Status            string `json:"status"`
	ActiveConnections int    `json:"active_connections"`
	ProjectsCreated   int    `json:"projects_created"`
}

// Health performs the general health probe.
func (c *HTTPClient) Health(ctx context.Context) (HealthInfo, error) {
	var resp healthResponse
	if err := c.getJSON(ctx, ProbeHealth, "/health", c.heavyTimeout, &resp); err != nil {
		return HealthInfo{}, err
	}
	if !strings.EqualFold(resp.Status, "healthy") {
		metrics.RecordProbeFailure(ProbeHealth)
		return HealthInfo{}, fmt.Errorf("%w: %s: backend reports status %q", ErrBadPayload, ProbeHealth, resp.Status)
	}
	return HealthInfo{
		ActiveConnections: resp.ActiveConnections,
		ProjectsCreated:   resp.ProjectsCreated,
	}, nil
}

type componentsResponse struct {
	Status     string            `json:"status"`
	Components []json.RawMessage `json:"components"`
	Count      int               `json:"count"`
}

// ListComponents performs the capability probe and returns the component count.
func (c *HTTPClient) ListComponents(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		metrics.RecordProbeLatency(ProbeComponents, float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, c.heavyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/list_components", bytes.NewReader([]byte("{}")))
	if err != nil {
		metrics.RecordProbeFailure(ProbeComponents)
		return 0, fmt.Errorf("%w: %s: %w", ErrProbeFailed, ProbeComponents, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp componentsResponse
	if err := c.do(req, ProbeComponents, &resp); err != nil {
		return 0, err
	}
	if resp.Status != "" && !strings.EqualFold(resp.Status, "success") && !strings.EqualFold(resp.Status, "ok") {
		metrics.RecordProbeFailure(ProbeComponents)
		return 0, fmt.Errorf("%w: %s: backend reports status %q", ErrBadPayload, ProbeComponents, resp.Status)
	}
	// The full backend returns a components array; the simple variant may
	// return only a count field.
	if len(resp.Components) > 0 {
		return len(resp.Components), nil
	}
	return resp.Count, nil
}

// DetailedHealth performs the optional diagnostics probe.
func (c *HTTPClient) DetailedHealth(ctx context.Context) (map[string]any, error) {
	var resp map[string]any
	if err := c.getJSON(ctx, ProbeDiagnostics, "/health/detailed", c.lightTimeout, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// getJSON issues a GET probe bounded by timeout and decodes the JSON body.
func (c *HTTPClient) getJSON(ctx context.Context, probe, path string, timeout time.Duration, out any) error {
	start := time.Now()
	defer func() {
		metrics.RecordProbeLatency(probe, float64(time.Since(start).Milliseconds()))
	}()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		metrics.RecordProbeFailure(probe)
		return fmt.Errorf("%w: %s: %w", ErrProbeFailed, probe, err)
	}
	return c.do(req, probe, out)
}

// do executes a probe request and decodes the response. Connectivity
// failures, non-2xx statuses and undecodable bodies are all probe failures.
func (c *HTTPClient) do(req *http.Request, probe string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordProbeFailure(probe)
		return fmt.Errorf("%w: %s: %w", ErrProbeFailed, probe, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		metrics.RecordProbeFailure(probe)
		return fmt.Errorf("%w: %s: unexpected status %d", ErrUnexpectedStatus, probe, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordProbeFailure(probe)
		return fmt.Errorf("%w: %s: %w", ErrBadPayload, probe, err)
	}
	return nil
}
