// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/statuskit/vigil/internal/domain/model"
)

// LogsHandler handles activity journal requests.
type LogsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(deps Dependencies, maxLimit int) *LogsHandler {
	return &LogsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

type logsResponse struct {
	Entries []model.LogEntry `json:"entries"`
	Count   int              `json:"count"`
}

// HandleLogs handles GET /logs?limit=N and DELETE /logs requests.
func (h *LogsHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *LogsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_logs"
	n := 0 // all entries
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
			return
		}
		if v > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
			return
		}
		n = v
	}
	entries := h.deps.Logs(r.Context(), n)
	if entries == nil {
		entries = []model.LogEntry{}
	}
	writeJSON(w, http.StatusOK, logsResponse{Entries: entries, Count: len(entries)})
}

func (h *LogsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearLogs(r.Context())
	writeJSON(w, http.StatusOK, ackResponse{Status: "cleared"})
}
