package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dm/mongofleet/internal/model"
)

// Color constants — fleet monitor palette.
var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorWhite  = lipgloss.Color("#f8fafc")
	colorDark   = lipgloss.Color("#1e293b")
	colorAlt    = lipgloss.Color("#0f172a")
)

// Status styles — bold foreground, used for fleet and endpoint state labels.
var (
	StyleStatusGreen  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	StyleStatusYellow = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	StyleStatusRed    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
)

// StyleHeader — full-width dark header bar.
var StyleHeader = lipgloss.NewStyle().
	Background(colorDark).
	Foreground(colorWhite).
	Padding(0, 1)

// StyleOverviewCard — bordered card for the fleet overview bar.
var StyleOverviewCard = lipgloss.NewStyle().
	Background(colorAlt).
	Foreground(colorWhite).
	Padding(0, 1).
	Margin(0).
	Align(lipgloss.Center)

// Table styles.
var (
	StyleTableHeader = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(colorGray)

	StyleTableRow = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// Utility styles.
var (
	StyleError = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	StyleDim   = lipgloss.NewStyle().Foreground(colorGray)
	StyleGreen = lipgloss.NewStyle().Foreground(colorGreen)
	StyleBlue  = lipgloss.NewStyle().Foreground(colorBlue)
)

// FleetStatusStyle returns the style for the aggregate fleet status.
func FleetStatusStyle(s model.FleetStatus) lipgloss.Style {
	switch s {
	case model.AllOnline:
		return StyleStatusGreen
	case model.Partial:
		return StyleStatusYellow
	default:
		return StyleStatusRed
	}
}

// fleetStatusColor returns the card background color for the fleet status.
func fleetStatusColor(s model.FleetStatus) lipgloss.Color {
	switch s {
	case model.AllOnline:
		return colorGreen
	case model.Partial:
		return colorYellow
	default:
		return colorRed
	}
}

// endpointStateStyle returns the style for one endpoint's state label:
// green ONLINE, yellow DEGRADED (partial success), red OFFLINE.
func endpointStateStyle(r *model.ProbeResult) lipgloss.Style {
	switch {
	case r.Degraded():
		return StyleStatusYellow
	case r.Online:
		return StyleStatusGreen
	default:
		return StyleStatusRed
	}
}

// endpointStateLabel returns the display label for one endpoint's state.
func endpointStateLabel(r *model.ProbeResult) string {
	switch {
	case r.Degraded():
		return "DEGRADED"
	case r.Online:
		return "ONLINE"
	default:
		return "OFFLINE"
	}
}
