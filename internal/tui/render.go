package tui

import (
	"fmt"
	"strings"

	"github.com/dm/mongofleet/internal/format"
	"github.com/dm/mongofleet/internal/model"
)

// RenderOnce renders a one-off, non-persistent view of a snapshot and the
// reconnect ledger: the on-demand query output. Pure function of its inputs.
func RenderOnce(snap *model.FleetSnapshot, recs map[string]model.ReconnectRecord) string {
	var b strings.Builder

	status := FleetStatusStyle(snap.Status).Render(snap.Status.String())
	fmt.Fprintf(&b, "%s  %d/%d online (%d%%)  checked %s\n\n",
		status, snap.OnlineCount, snap.Total, snap.Percentage,
		format.FormatTimestamp(snap.CheckedAt))

	b.WriteString(renderFleetTable(snap))
	b.WriteString("\n\nReconnect ledger\n")
	b.WriteString(renderReconnectTable(recs, orderedNames(snap)))
	b.WriteString("\n")

	return b.String()
}
