package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = ` ██╗  ██╗███████╗██████╗  ██████╗ ██╗███████╗
 ██║  ██║██╔════╝██╔══██╗██╔════╝ ██║██╔════╝
 ███████║█████╗  ██║  ██║██║  ███╗██║█████╗
 ██╔══██║██╔══╝  ██║  ██║██║   ██║██║██╔══╝
 ██║  ██║███████╗██████╔╝╚██████╔╝██║███████╗
 ╚═╝  ╚═╝╚══════╝╚═════╝  ╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "H · E · D · G · I · E"

const subtitle = "N U M B E R   D A S H"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	sub := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(subtitle)

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title) + "\n" + sub)
}

// renderStatsBar renders the player's record in a bordered box matching
// content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	bestStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	gamesStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	lastStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line string
	switch {
	case !st.loaded:
		line = dimStyle.Render("...")
	case st.games == 0:
		line = dimStyle.Render("NO RUNS YET")
	case compact:
		line = fmt.Sprintf("%s %s %s",
			bestStyle.Render(fmt.Sprintf("★%d", st.best)),
			gamesStyle.Render(fmt.Sprintf("▶%d", st.games)),
			lastStyle.Render(fmt.Sprintf("↺%d", st.last)),
		)
	default:
		line = fmt.Sprintf("%s  %s  %s",
			bestStyle.Render(fmt.Sprintf("★ BEST %d", st.best)),
			gamesStyle.Render(fmt.Sprintf("▶ %d RUNS", st.games)),
			lastStyle.Render(fmt.Sprintf("↺ LAST %d", st.last)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
