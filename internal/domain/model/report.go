package model

// StatusReport is the read shape for the monitor's current state: the
// snapshot plus the shared error/loading/hydration flags around it.
type StatusReport struct {
	Snapshot HealthSnapshot `json:"snapshot"`
	Err      string         `json:"error,omitempty"`
	Checking bool           `json:"checking"`
	Hydrated bool           `json:"hydrated"`
}
