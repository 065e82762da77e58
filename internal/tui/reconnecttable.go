package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/mongofleet/internal/format"
	"github.com/dm/mongofleet/internal/model"
)

var reconnectColumns = []columnDef{
	{Title: "Endpoint", Width: 16},
	{Title: "Attempts", Width: 9},
	{Title: "Consec", Width: 7},
	{Title: "Last Success", Width: 13},
	{Title: "Last Failure", Width: 13},
	{Title: "Reason", Width: 40},
}

// renderReconnectTable renders the reconnect ledger, one row per endpoint in
// the given order. Endpoints without a ledger entry yet render zero counters.
func renderReconnectTable(recs map[string]model.ReconnectRecord, names []string) string {
	lines := make([]string, 0, len(names)+1)
	lines = append(lines, renderColumnHeader(reconnectColumns))

	for _, name := range names {
		rec := recs[name]
		cells := []string{
			name,
			format.FormatNumber(rec.Attempts),
			format.FormatNumber(rec.ConsecutiveFailures),
			format.FormatRelative(rec.LastSuccess),
			format.FormatRelative(rec.LastFailure),
			rec.FailureReason,
		}
		styled := map[int]lipgloss.Style{}
		if rec.ConsecutiveFailures > 0 {
			styled[2] = StyleError
			styled[5] = StyleError
		} else {
			styled[5] = StyleDim
		}
		lines = append(lines, renderRow(reconnectColumns, cells, styled))
	}
	return strings.Join(lines, "\n")
}
