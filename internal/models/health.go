package models

import "time"

// HealthState is the reachability of one probed component.
type HealthState string

const (
	HealthChecking  HealthState = "checking"
	HealthHealthy   HealthState = "healthy"
	HealthUnhealthy HealthState = "unhealthy"
)

type HealthStatus struct {
	Backend   HealthState `json:"backend" yaml:"backend"`
	Database  HealthState `json:"database" yaml:"database"`
	CheckedAt time.Time   `json:"checkedAt" yaml:"checkedAt"`
}
