package model

import "time"

// TriggerReason records what asked for a health check.
type TriggerReason string

const (
	TriggerStartup  TriggerReason = "startup"
	TriggerInterval TriggerReason = "interval"
	TriggerManual   TriggerReason = "manual"
)

// Trigger is a check request flowing through the trigger queue. Scheduled
// and manual triggers share one queue so checks execute serially.
type Trigger struct {
	Reason      TriggerReason
	RequestedAt time.Time
}

// NewTrigger builds a trigger stamped with the current time.
func NewTrigger(reason TriggerReason) Trigger {
	return Trigger{Reason: reason, RequestedAt: time.Now()}
}
