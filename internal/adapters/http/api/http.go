// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/statuskit/vigil/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Status exposes the current snapshot and flags.
	Status() model.StatusReport

	// Refresh requests an immediate manual check. Returns false on backpressure.
	Refresh(ctx context.Context) bool

	// Logs returns up to n journal entries, newest first.
	Logs(ctx context.Context, n int) []model.LogEntry

	// ClearLogs empties the journal (and records the action).
	ClearLogs(ctx context.Context)
}

// StatusReport mirrors the read shape returned by the monitor.
type StatusReport = model.StatusReport

// Server wires HTTP routes for the monitor API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	statusHandler  *StatusHandler
	logsHandler    *LogsHandler
	refreshHandler *RefreshHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLogsLimit int) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		statusHandler:  NewStatusHandler(deps),
		logsHandler:    NewLogsHandler(deps, maxLogsLimit),
		refreshHandler: NewRefreshHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/status", MetricsMiddleware(s.statusHandler.HandleGetStatus, "status"))
	mux.HandleFunc("/logs", MetricsMiddleware(s.logsHandler.HandleLogs, "logs"))
	mux.HandleFunc("/refresh", MetricsMiddleware(s.refreshHandler.HandlePostRefresh, "refresh"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type ackResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
