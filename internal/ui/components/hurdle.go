package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/ui/theme"
)

// Pose is what the hedgehog is doing on the track.
type Pose int

const (
	PoseWaiting Pose = iota
	PoseJumping
	PoseStumbling
)

const (
	hedgehog        = "^^^°>"
	hedgehogStumble = "^^^×>"
	hurdle          = "╫"
	runnerColumn    = 2
)

// HurdleStrip is the side view of the hedgehog and the next hurdle. The
// hurdle slides toward the hedgehog as Approach goes from 0 to 1.
type HurdleStrip struct {
	Width    int
	Approach float64
	Pose     Pose
}

// NewHurdleStrip creates a strip of the given width.
func NewHurdleStrip(width int, approach float64, pose Pose) HurdleStrip {
	return HurdleStrip{Width: width, Approach: approach, Pose: pose}
}

type placement struct {
	row, col int
	glyph    string
	style    lipgloss.Style
}

// hurdleColumn is where the hurdle stands for the current approach.
func (h HurdleStrip) hurdleColumn() int {
	near := runnerColumn + len([]rune(hedgehog)) + 1
	far := max(near, h.Width-2)
	a := min(max(h.Approach, 0), 1)
	return far - int(a*float64(far-near))
}

func (h HurdleStrip) placements() []placement {
	spines := lipgloss.NewStyle().Foreground(theme.Spines).Bold(true)
	bar := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	near := runnerColumn + len([]rune(hedgehog)) + 1

	switch h.Pose {
	case PoseJumping:
		return []placement{
			{row: 0, col: runnerColumn + 2, glyph: hedgehog, style: spines},
			{row: 1, col: runnerColumn + 4, glyph: hurdle, style: bar},
		}
	case PoseStumbling:
		return []placement{
			{row: 1, col: runnerColumn, glyph: hedgehogStumble, style: spines.Foreground(theme.Error)},
			{row: 1, col: near, glyph: hurdle, style: bar},
		}
	default:
		return []placement{
			{row: 1, col: runnerColumn, glyph: hedgehog, style: spines},
			{row: 1, col: h.hurdleColumn(), glyph: hurdle, style: bar},
		}
	}
}

// Rows returns the two unstyled track rows, air first.
func (h HurdleStrip) Rows() [2]string {
	var rows [2]string
	for r := range rows {
		rows[r] = h.renderRow(r, false)
	}
	return rows
}

func (h HurdleStrip) renderRow(row int, styled bool) string {
	var b strings.Builder
	col := 0
	for _, p := range h.placements() {
		if p.row != row || p.col < col {
			continue
		}
		b.WriteString(strings.Repeat(" ", p.col-col))
		if styled {
			b.WriteString(p.style.Render(p.glyph))
		} else {
			b.WriteString(p.glyph)
		}
		col = p.col + len([]rune(p.glyph))
	}
	if col < h.Width {
		b.WriteString(strings.Repeat(" ", h.Width-col))
	}
	return b.String()
}

// View renders the track with a ground line underneath.
func (h HurdleStrip) View() string {
	ground := lipgloss.NewStyle().
		Foreground(theme.Ground).
		Render(strings.Repeat("▔", max(h.Width, 1)))
	return h.renderRow(0, true) + "\n" + h.renderRow(1, true) + "\n" + ground
}
