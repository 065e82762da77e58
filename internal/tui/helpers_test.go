package tui

import (
	"time"

	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/model"
)

// Test fixtures shared across the package's tests.

func fleetEndpoints(names ...string) []config.Endpoint {
	eps := make([]config.Endpoint, 0, len(names))
	for _, n := range names {
		eps = append(eps, config.Endpoint{Name: n, URI: "mongodb://" + n + ":27017", TimeoutMillis: 1000})
	}
	return eps
}

func onlineProbe(name string) model.ProbeResult {
	ping := int64(4)
	uptime := float64(7_200)
	return model.ProbeResult{
		Name:          name,
		Online:        true,
		PingMillis:    &ping,
		UptimeSeconds: &uptime,
		Connections:   &model.ConnectionStats{Current: 12, Available: 100},
		Memory:        &model.MemoryStats{ResidentBytes: 268_435_456},
		Network:       &model.NetworkStats{},
		Opcounters:    &model.OpcounterStats{},
		StorageEngine: &model.StorageEngineInfo{Name: "wiredTiger", Persistent: true},
		Server:        &model.ServerInfo{Version: "7.0.5", Process: "mongod", Host: name},
		Replication: &model.ReplicationInfo{
			SetName:   "rs0",
			IsPrimary: true,
			Hosts:     []string{name + ":27017"},
		},
		CheckedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func degradedProbe(name string) model.ProbeResult {
	ping := int64(9)
	return model.ProbeResult{
		Name:       name,
		Online:     true,
		PingMillis: &ping,
		Err:        "serverStatus failed: not authorized",
		CheckedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func offlineProbe(name string) model.ProbeResult {
	return model.ProbeResult{
		Name:      name,
		Err:       "connection timeout",
		CheckedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func snapshotOf(results ...model.ProbeResult) *model.FleetSnapshot {
	return model.NewFleetSnapshot(results)
}
