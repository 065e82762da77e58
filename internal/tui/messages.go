package tui

import (
	"time"

	"github.com/dm/mongofleet/internal/model"
)

// SnapshotMsg delivers the results of a completed check cycle to the TUI.
type SnapshotMsg struct {
	Snapshot  *model.FleetSnapshot
	Reconnect map[string]model.ReconnectRecord
}

// CheckErrorMsg signals a check cycle that crashed outright. Probe failures
// are data inside a snapshot; this is for programming defects only, so the
// previous snapshot stays on screen.
type CheckErrorMsg struct{ Err error }

// TickMsg triggers the next scheduled check.
type TickMsg time.Time
