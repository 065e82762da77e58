package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/mongofleet/internal/format"
	"github.com/dm/mongofleet/internal/model"
)

var fleetColumns = []columnDef{
	{Title: "Endpoint", Width: 16},
	{Title: "State", Width: 8},
	{Title: "Ping", Width: 7},
	{Title: "Uptime", Width: 15},
	{Title: "Conns", Width: 7},
	{Title: "Memory", Width: 9},
	{Title: "Version", Width: 8},
	{Title: "Repl", Width: 10},
	{Title: "Error", Width: 40},
}

// renderFleetTable renders the per-endpoint status table in configuration
// order. Pure function of the snapshot: identical snapshots render
// identically.
func renderFleetTable(snap *model.FleetSnapshot) string {
	lines := make([]string, 0, len(snap.Results)+1)
	lines = append(lines, renderColumnHeader(fleetColumns))

	for i := range snap.Results {
		r := &snap.Results[i]
		lines = append(lines, renderFleetRow(r))
	}
	return strings.Join(lines, "\n")
}

func renderFleetRow(r *model.ProbeResult) string {
	cells := []string{
		r.Name,
		endpointStateLabel(r),
		format.FormatPing(r.PingMillis),
		"---",
		"---",
		"---",
		"---",
		"---",
		r.Err,
	}

	if r.UptimeSeconds != nil {
		cells[3] = format.FormatUptime(*r.UptimeSeconds)
	}
	if r.Connections != nil {
		cells[4] = format.FormatNumber(r.Connections.Current)
	}
	if r.Memory != nil {
		cells[5] = format.FormatBytes(r.Memory.ResidentBytes)
	}
	if r.Server != nil {
		cells[6] = r.Server.Version
	}
	cells[7] = replLabel(r)

	styled := map[int]lipgloss.Style{
		1: endpointStateStyle(r),
		8: StyleError,
	}
	if r.Err == "" {
		styled[8] = StyleDim
	}
	return renderRow(fleetColumns, cells, styled)
}

// replLabel summarises replication membership: "rs0/PRI", "rs0/SEC",
// "rs0/---" for other members, "standalone" when the endpoint carries no
// replication section, "---" when no metrics are available.
func replLabel(r *model.ProbeResult) string {
	if r.Replication == nil {
		if r.Online && !r.Degraded() {
			return "standalone"
		}
		return "---"
	}
	role := "---"
	switch {
	case r.Replication.IsPrimary:
		role = "PRI"
	case r.Replication.IsSecondary:
		role = "SEC"
	}
	return r.Replication.SetName + "/" + role
}
