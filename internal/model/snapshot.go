package model

import (
	"math"
	"time"
)

// FleetStatus classifies the fleet as a whole.
type FleetStatus int

const (
	AllOffline FleetStatus = iota
	Partial
	AllOnline
)

// String returns the display name of the status.
func (s FleetStatus) String() string {
	switch s {
	case AllOnline:
		return "ALL ONLINE"
	case Partial:
		return "PARTIAL"
	default:
		return "ALL OFFLINE"
	}
}

// FleetSnapshot is the aggregated result of one check cycle across all
// endpoints. It is immutable after construction; every cycle produces a
// fresh snapshot.
type FleetSnapshot struct {
	Results      []ProbeResult `json:"results"` // endpoint configuration order
	Total        int           `json:"total"`
	OnlineCount  int           `json:"online"`
	OfflineCount int           `json:"offline"`
	Status       FleetStatus   `json:"status"`
	Percentage   int           `json:"percentage"`
	CheckedAt    time.Time     `json:"checked_at"`
}

// NewFleetSnapshot aggregates per-endpoint results into a snapshot.
// An empty result set classifies as AllOffline with Percentage 0.
func NewFleetSnapshot(results []ProbeResult) *FleetSnapshot {
	online := 0
	for i := range results {
		if results[i].Online {
			online++
		}
	}
	total := len(results)

	snap := &FleetSnapshot{
		Results:      results,
		Total:        total,
		OnlineCount:  online,
		OfflineCount: total - online,
		CheckedAt:    time.Now(),
	}

	switch {
	case online == 0:
		snap.Status = AllOffline
	case online == total:
		snap.Status = AllOnline
	default:
		snap.Status = Partial
	}

	if total > 0 {
		snap.Percentage = int(math.Round(100 * float64(online) / float64(total)))
	}
	return snap
}
