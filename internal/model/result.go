package model

import "time"

// ProbeResult holds the outcome of a single probe against one endpoint.
// Exactly one of two shapes is valid: offline (Online false, all metric
// pointers nil, Err set) or online (Ping set, metric groups populated unless
// the serverStatus fetch failed, in which case Err is set and the groups stay
// nil — the partial-success state).
type ProbeResult struct {
	Name   string `json:"name"`
	Online bool   `json:"online"`

	// PingMillis is the measured liveness round-trip. Present iff a ping
	// was attempted (i.e. the connection was established).
	PingMillis *int64 `json:"ping_ms,omitempty"`

	UptimeSeconds *float64           `json:"uptime_seconds,omitempty"`
	Connections   *ConnectionStats   `json:"connections,omitempty"`
	Memory        *MemoryStats       `json:"memory,omitempty"`
	Network       *NetworkStats      `json:"network,omitempty"`
	Opcounters    *OpcounterStats    `json:"opcounters,omitempty"`
	StorageEngine *StorageEngineInfo `json:"storage_engine,omitempty"`
	Server        *ServerInfo        `json:"server,omitempty"`

	// Replication is nil both when the endpoint is not part of a replica
	// set and when metrics are unavailable; use Degraded()/Online to tell
	// the cases apart.
	Replication *ReplicationInfo `json:"replication,omitempty"`

	Err       string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// Degraded reports the partial-success state: the endpoint answered the
// liveness probe but its extended diagnostics could not be fetched.
func (r *ProbeResult) Degraded() bool {
	return r.Online && r.Err != ""
}

// ConnectionStats holds the connection counters of one endpoint.
type ConnectionStats struct {
	Current      int64 `json:"current"`
	Available    int64 `json:"available"`
	TotalCreated int64 `json:"total_created"`
	Active       int64 `json:"active"`
}

// MemoryStats holds resident and virtual memory sizes in bytes.
type MemoryStats struct {
	ResidentBytes int64 `json:"resident_bytes"`
	VirtualBytes  int64 `json:"virtual_bytes"`
}

// NetworkStats holds cumulative network traffic counters.
type NetworkStats struct {
	BytesIn     int64 `json:"bytes_in"`
	BytesOut    int64 `json:"bytes_out"`
	NumRequests int64 `json:"num_requests"`
}

// OpcounterStats holds cumulative operation counters by type.
type OpcounterStats struct {
	Insert  int64 `json:"insert"`
	Query   int64 `json:"query"`
	Update  int64 `json:"update"`
	Delete  int64 `json:"delete"`
	Getmore int64 `json:"getmore"`
	Command int64 `json:"command"`
}

// StorageEngineInfo identifies the storage engine of one endpoint.
type StorageEngineInfo struct {
	Name       string `json:"name"`
	Persistent bool   `json:"persistent"`
}

// ServerInfo holds identity fields of the probed server process.
type ServerInfo struct {
	Version string `json:"version"`
	Process string `json:"process"`
	Host    string `json:"host"`
	PID     int64  `json:"pid"`
}

// ReplicationInfo describes replica-set membership of one endpoint.
type ReplicationInfo struct {
	SetName     string   `json:"set_name"`
	IsPrimary   bool     `json:"is_primary"`
	IsSecondary bool     `json:"is_secondary"`
	Hosts       []string `json:"hosts,omitempty"`
}
