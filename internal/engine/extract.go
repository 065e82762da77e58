package engine

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dm/mongofleet/internal/model"
)

// Metric extraction from a raw serverStatus payload. Every accessor degrades
// field-by-field: a missing or malformed section yields zero values, "unknown"
// strings, or false booleans, never an error. Extraction is pure; the payload
// is not modified.

const bytesPerMB = 1024 * 1024

// subDoc returns the named sub-document of m, or nil when absent or not a
// document. Decoding serverStatus into bson.M yields bson.M sub-documents,
// but bson.D is accepted too for payloads built by hand.
func subDoc(m bson.M, key string) bson.M {
	switch v := m[key].(type) {
	case bson.M:
		return v
	case bson.D:
		return v.Map()
	default:
		return nil
	}
}

// asInt64 coerces any bson numeric type to int64, defaulting to 0.
func asInt64(m bson.M, key string) int64 {
	switch v := m[key].(type) {
	case int32:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// asFloat64 coerces any bson numeric type to float64, defaulting to 0.
func asFloat64(m bson.M, key string) float64 {
	switch v := m[key].(type) {
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case float64:
		return v
	default:
		return 0
	}
}

// asString returns the string value for key, or def when absent or not a string.
func asString(m bson.M, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func asBool(m bson.M, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// asStringSlice converts a bson array of strings, skipping non-string elements.
func asStringSlice(m bson.M, key string) []string {
	arr, ok := m[key].(primitive.A)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ExtractConnections derives connection counters. Missing sections or fields
// default to zero.
func ExtractConnections(status bson.M) *model.ConnectionStats {
	sec := subDoc(status, "connections")
	if sec == nil {
		return &model.ConnectionStats{}
	}
	return &model.ConnectionStats{
		Current:      asInt64(sec, "current"),
		Available:    asInt64(sec, "available"),
		TotalCreated: asInt64(sec, "totalCreated"),
		Active:       asInt64(sec, "active"),
	}
}

// ExtractMemory derives memory sizes. serverStatus reports mem.resident and
// mem.virtual in megabytes; the contract is bytes.
func ExtractMemory(status bson.M) *model.MemoryStats {
	sec := subDoc(status, "mem")
	if sec == nil {
		return &model.MemoryStats{}
	}
	return &model.MemoryStats{
		ResidentBytes: int64(asFloat64(sec, "resident") * bytesPerMB),
		VirtualBytes:  int64(asFloat64(sec, "virtual") * bytesPerMB),
	}
}

// ExtractNetwork derives cumulative network counters.
func ExtractNetwork(status bson.M) *model.NetworkStats {
	sec := subDoc(status, "network")
	if sec == nil {
		return &model.NetworkStats{}
	}
	return &model.NetworkStats{
		BytesIn:     asInt64(sec, "bytesIn"),
		BytesOut:    asInt64(sec, "bytesOut"),
		NumRequests: asInt64(sec, "numRequests"),
	}
}

// ExtractOpcounters derives cumulative operation counters.
func ExtractOpcounters(status bson.M) *model.OpcounterStats {
	sec := subDoc(status, "opcounters")
	if sec == nil {
		return &model.OpcounterStats{}
	}
	return &model.OpcounterStats{
		Insert:  asInt64(sec, "insert"),
		Query:   asInt64(sec, "query"),
		Update:  asInt64(sec, "update"),
		Delete:  asInt64(sec, "delete"),
		Getmore: asInt64(sec, "getmore"),
		Command: asInt64(sec, "command"),
	}
}

// ExtractStorageEngine derives the storage engine identity.
func ExtractStorageEngine(status bson.M) *model.StorageEngineInfo {
	sec := subDoc(status, "storageEngine")
	if sec == nil {
		return &model.StorageEngineInfo{Name: "unknown"}
	}
	return &model.StorageEngineInfo{
		Name:       asString(sec, "name", "unknown"),
		Persistent: asBool(sec, "persistent"),
	}
}

// ExtractServerInfo derives the server process identity from the payload's
// top-level fields.
func ExtractServerInfo(status bson.M) *model.ServerInfo {
	return &model.ServerInfo{
		Version: asString(status, "version", "unknown"),
		Process: asString(status, "process", "unknown"),
		Host:    asString(status, "host", "unknown"),
		PID:     asInt64(status, "pid"),
	}
}

// ExtractReplication derives replica-set membership. Returns nil when the
// payload carries no repl section at all — the endpoint is not part of a
// replicated deployment, which downstream must distinguish from metrics
// being unavailable.
func ExtractReplication(status bson.M) *model.ReplicationInfo {
	sec := subDoc(status, "repl")
	if sec == nil {
		return nil
	}
	return &model.ReplicationInfo{
		SetName:     asString(sec, "setName", "unknown"),
		IsPrimary:   asBool(sec, "ismaster"),
		IsSecondary: asBool(sec, "secondary"),
		Hosts:       asStringSlice(sec, "hosts"),
	}
}

// applyServerStatus populates all metric groups of r from a fetched payload.
func applyServerStatus(r *model.ProbeResult, status bson.M) {
	uptime := asFloat64(status, "uptime")
	r.UptimeSeconds = &uptime
	r.Connections = ExtractConnections(status)
	r.Memory = ExtractMemory(status)
	r.Network = ExtractNetwork(status)
	r.Opcounters = ExtractOpcounters(status)
	r.StorageEngine = ExtractStorageEngine(status)
	r.Server = ExtractServerInfo(status)
	r.Replication = ExtractReplication(status)
}
