package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // Last run set a personal best
	MascotSleepy                    // No runs yet
)

const mascotIdle = `  ,^^^^^^^,
 ^^^^^^^^^^^.
^^^^^^^^^^ ◉ \
^^^^^^^^^^____●
   ╹╹    ╹╹`

const mascotCelebrating = `  ,^^^^^^^,   ★
 ^^^^^^^^^^^.
^^^^^^^^^^ ★ \
^^^^^^^^^^__▽_●
   ╹╹    ╹╹`

const mascotSleepy = `  ,^^^^^^^,   z
 ^^^^^^^^^^^. z
^^^^^^^^^^ ─ \
^^^^^^^^^^____●
   ╹╹    ╹╹`

// RenderMascot returns the hedgehog art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	art := mascotIdle
	fg := theme.Spines

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotSleepy:
		art = mascotSleepy
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
