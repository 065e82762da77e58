package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderOverview renders the 4-card fleet overview bar: status, online,
// offline, availability. Returns empty string if no snapshot is available yet.
func renderOverview(app *App) string {
	if app.snapshot == nil {
		return ""
	}

	width := app.width
	if width <= 0 {
		width = 80
	}
	cardWidth := (width - 8) / 4
	if cardWidth < 10 {
		cardWidth = 10
	}

	snap := app.snapshot

	// Card 1: Fleet status — colored background.
	card1 := StyleOverviewCard.
		Background(fleetStatusColor(snap.Status)).
		Foreground(colorDark).
		Bold(true).
		Width(cardWidth).
		Render(snap.Status.String() + "\nStatus")

	// Card 2: Online count.
	card2 := StyleOverviewCard.
		Foreground(colorGreen).
		Width(cardWidth).
		Render(fmt.Sprintf("%d", snap.OnlineCount) + "\nOnline")

	// Card 3: Offline count — red only when nonzero.
	offlineFg := colorGray
	if snap.OfflineCount > 0 {
		offlineFg = colorRed
	}
	card3 := StyleOverviewCard.
		Foreground(offlineFg).
		Width(cardWidth).
		Render(fmt.Sprintf("%d", snap.OfflineCount) + "\nOffline")

	// Card 4: Availability percentage.
	card4 := StyleOverviewCard.
		Foreground(colorBlue).
		Width(cardWidth).
		Render(fmt.Sprintf("%d%%", snap.Percentage) + "\nAvailability")

	return lipgloss.JoinHorizontal(lipgloss.Top, card1, card2, card3, card4)
}
