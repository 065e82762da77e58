package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// columnDef describes a single column in a table.
type columnDef struct {
	Title string
	Width int
}

// pad truncates or right-pads s to width cells.
func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}

// renderColumnHeader renders the underlined title row for cols.
func renderColumnHeader(cols []columnDef) string {
	cells := make([]string, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, pad(c.Title, c.Width))
	}
	return StyleTableHeader.Render(strings.Join(cells, "  "))
}

// renderRow renders one data row, padding each cell to its column width.
// styled maps a cell index to its style; unstyled cells use StyleTableRow.
// Styling is applied after padding so ANSI sequences do not skew the cell
// widths.
func renderRow(cols []columnDef, cells []string, styled map[int]lipgloss.Style) string {
	out := make([]string, 0, len(cols))
	for i, c := range cols {
		cell := ""
		if i < len(cells) {
			cell = sanitize(cells[i])
		}
		padded := pad(cell, c.Width)
		if style, ok := styled[i]; ok {
			out = append(out, style.Render(padded))
		} else {
			out = append(out, StyleTableRow.Render(padded))
		}
	}
	return strings.Join(out, "  ")
}
