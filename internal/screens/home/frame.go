package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/ui/theme"
)

const titleFull = `┌─┐┌─┐┬ ┬┌─┐ ┬ ┬┌─┐┌─┐┌┬┐
├─┘└─┐└┬┘│─┼┐│ │├┤ └─┐ │
┴  └─┘ ┴ └─┘└└─┘└─┘└─┘ ┴ `

const titleCompact = "P S Y Q U E S T"

func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderCatalogBar shows how many tests are available and where they came from.
func renderCatalogBar(tests int, source string, cw int) string {
	text := fmt.Sprintf("%d tests", tests)
	if source != "" {
		text += "  ·  " + source
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(text)
}

func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
