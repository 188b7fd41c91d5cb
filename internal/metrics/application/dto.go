package application

import "sysmon/internal/metrics/domain"

// SamplerState is the phase of the sampling loop
type SamplerState int

const (
	// StateSeeding: no previous snapshot exists yet
	StateSeeding SamplerState = iota
	// StateTicking: every iteration derives metrics against the previous snapshot
	StateTicking
)

func (s SamplerState) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateTicking:
		return "ticking"
	default:
		return "unknown"
	}
}

// reading is everything one iteration pulls from the host, joined before use
type reading struct {
	snapshot domain.CounterSnapshot
	mem      domain.Gauge
	disk     domain.Gauge

	// false when the family fell back to the previous counters
	diskIOValid bool
	netIOValid  bool
}
