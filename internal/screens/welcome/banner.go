package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/psyquest/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗██╗   ██╗ ██████╗ ██╗   ██╗███████╗███████╗████████╗
 ██╔══██╗██╔════╝╚██╗ ██╔╝██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
 ██████╔╝███████╗ ╚████╔╝ ██║   ██║██║   ██║█████╗  ███████╗   ██║
 ██╔═══╝ ╚════██║  ╚██╔╝  ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
 ██║     ███████║   ██║   ╚██████╔╝╚██████╔╝███████╗███████║   ██║
 ╚═╝     ╚══════╝   ╚═╝    ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "P S Y Q U E S T"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 72

// RenderBanner returns the PSYQUEST banner styled in the primary color.
// Uses a compact fallback for terminals narrower than bannerMinWidth.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
