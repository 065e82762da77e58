package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dm/mongofleet/internal/format"
)

// renderHeader renders the top header bar.
//
// Layout:
//   left:   "MongoDB Fleet" with endpoint count (or "Checking N endpoints..." before the first cycle)
//   center: colored "● STATUS  N/M (P%)" indicator
//   right:  "Last: HH:MM:SS  Every: Ns"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var left, center, right string

	if app.snapshot == nil {
		left = fmt.Sprintf("Checking %d endpoints...", len(app.endpoints))
		if app.lastError != nil {
			center = StyleError.Render("● CHECK FAILED  " + truncateErr(app.lastError.Error()))
			right = StyleError.Render("Press r to retry")
		}
	} else {
		snap := app.snapshot
		left = fmt.Sprintf("MongoDB Fleet (%d)", snap.Total)

		center = FleetStatusStyle(snap.Status).Render(fmt.Sprintf(
			"● %s  %d/%d (%d%%)", snap.Status, snap.OnlineCount, snap.Total, snap.Percentage))

		lastStr := format.FormatTimestamp(snap.CheckedAt)
		right = StyleDim.Render(fmt.Sprintf("Last: %s  Every: %s", lastStr, formatDuration(app.interval)))

		if app.lastError != nil {
			// Stale-but-present: the last good snapshot stays visible.
			right = StyleError.Render("stale: " + truncateErr(app.lastError.Error()))
		}
	}

	// Build row: left + padding + center + padding + right, filling innerWidth.
	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	leftW := lipgloss.Width(left)
	centerW := lipgloss.Width(center)
	rightW := lipgloss.Width(right)

	gap := innerWidth - leftW - centerW - rightW
	if gap < 2 {
		gap = 2
	}
	leftPad := gap / 2
	rightPad := gap - leftPad

	row := left +
		strings.Repeat(" ", leftPad) +
		center +
		strings.Repeat(" ", rightPad) +
		right

	return StyleHeader.Width(width).Render(row)
}

// formatDuration formats the check interval as a compact string, e.g. "10s" or "2m".
func formatDuration(d time.Duration) string {
	if d >= time.Minute {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}

// truncateErr caps an error string for the header bar.
func truncateErr(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// sanitize strips control characters so endpoint names and errors cannot
// corrupt the terminal layout.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
