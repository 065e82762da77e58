package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dm/mongofleet/internal/model"
)

func TestRenderOnceIdempotent(t *testing.T) {
	snap := snapshotOf(onlineProbe("alpha"), offlineProbe("beta"))
	recs := map[string]model.ReconnectRecord{
		"beta": {Attempts: 1, ConsecutiveFailures: 1, FailureReason: "connection timeout"},
	}

	first := RenderOnce(snap, recs)
	second := RenderOnce(snap, recs)
	assert.Equal(t, first, second, "identical snapshots must render identically")
}

func TestRenderOnceContent(t *testing.T) {
	snap := snapshotOf(onlineProbe("alpha"), offlineProbe("beta"))
	snap.CheckedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	out := RenderOnce(snap, map[string]model.ReconnectRecord{})

	assert.Contains(t, out, "PARTIAL")
	assert.Contains(t, out, "1/2 online (50%)")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Contains(t, out, "Reconnect ledger")
	assert.Contains(t, out, "2025-06-01T12:00:00Z", "fleet CheckedAt timestamp rendered in RFC 3339")
}
