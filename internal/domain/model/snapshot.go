// Package model contains domain models passed between layers.
package model

import "time"

// ServerStatus is the aggregate health of the monitored backend.
type ServerStatus string

const (
	StatusOperational ServerStatus = "operational"
	// StatusDegraded is a representable display state reserved for partial
	// outages. The check cycle only ever produces operational or down; see
	// TestServerStatusDegradedNeverProduced.
	StatusDegraded ServerStatus = "degraded"
	StatusDown     ServerStatus = "down"
)

// HealthSnapshot is the single current status record for the backend.
// Exactly one snapshot exists at a time; each check cycle replaces it
// wholesale rather than mutating it in place.
type HealthSnapshot struct {
	Status              ServerStatus `json:"server_health"`
	ActiveConnections   int          `json:"active_connections"`
	ComponentsAvailable int          `json:"components_available"`
	ProjectsCreated     int          `json:"projects_created"`
	ResponseTimeMS      int64        `json:"response_time_ms"`
	LastChecked         time.Time    `json:"last_checked"`
}

// NewHealthSnapshot returns the optimistic startup snapshot used before the
// first check completes.
func NewHealthSnapshot() HealthSnapshot {
	return HealthSnapshot{
		Status:      StatusOperational,
		LastChecked: time.Now(),
	}
}
