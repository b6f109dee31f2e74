package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Overlay centers overlay on top of base. Rows covered by the overlay are
// replaced whole so escape sequences in base are never split.
func Overlay(base, overlay string, width, height int) string {
	if base == "" {
		return overlay
	}

	startY := (height - lipgloss.Height(overlay)) / 2
	baseLines := strings.Split(base, "\n")
	for len(baseLines) < height {
		baseLines = append(baseLines, strings.Repeat(" ", width))
	}

	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	for y, line := range strings.Split(overlay, "\n") {
		row := startY + y
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = centered.Render(line)
	}
	return strings.Join(baseLines, "\n")
}

// Ellipsis truncates s to maxWidth cells, ending in "..." when cut
func Ellipsis(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", max(maxWidth, 0))
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
