package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/router"
	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/screens/game"
	"github.com/abhisek/hedgie/internal/screens/highscore"
	"github.com/abhisek/hedgie/internal/screens/history"
	"github.com/abhisek/hedgie/internal/screens/instructions"
	"github.com/abhisek/hedgie/internal/screens/picker"
	"github.com/abhisek/hedgie/internal/screens/placeholder"
	"github.com/abhisek/hedgie/internal/store"
	"github.com/abhisek/hedgie/internal/ui/components"
)

const (
	buttonWidth = 22
	statsWindow = 50
)

// stats is the player's record drawn from recent games.
type stats struct {
	loaded       bool
	games        int
	best         int
	last         int
	personalBest bool
}

type statsLoadedMsg struct {
	stats stats
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env   *game.Env
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *game.Env) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: build()}
			}
		}
	}

	options := []components.Option{
		{Label: "PLAY", Action: push(func() screen.Screen {
			return picker.NewDifficulty(env)
		})},
		{Label: "PLAY BY GRADE", Action: push(func() screen.Screen {
			return picker.NewGrade(env)
		})},
		{Label: "HIGH SCORES", Action: push(func() screen.Screen {
			return highscore.New(env.Leaderboard(), problemgen.Medium.Key(), env.BoardSize())
		})},
		{Label: "RECENT GAMES", Action: push(func() screen.Screen {
			if env.Events == nil {
				return placeholder.New("Recent Games", "Game history needs the local database,\nwhich could not be opened.")
			}
			return history.New(env.Events)
		})},
		{Label: "HOW TO PLAY", Action: push(func() screen.Screen {
			return instructions.New()
		})},
		{Label: "EXIT GAME", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		env:  env,
		menu: components.NewMenu(options...),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the record after a game.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	events := h.env.Events
	if events == nil {
		return func() tea.Msg { return statsLoadedMsg{stats: stats{loaded: true}} }
	}
	log := h.env.Log
	return func() tea.Msg {
		games, err := events.RecentGames(context.Background(), statsWindow)
		if err != nil {
			if log != nil {
				log.WithError(err).Warn("load recent games failed")
			}
			return statsLoadedMsg{stats: stats{loaded: true}}
		}
		return statsLoadedMsg{stats: summarize(games)}
	}
}

// summarize computes the record from games, newest first.
func summarize(games []store.GameEvent) stats {
	st := stats{loaded: true, games: len(games)}
	if len(games) == 0 {
		return st
	}
	st.last = games[0].Score
	for _, g := range games {
		st.best = max(st.best, g.Score)
	}
	st.personalBest = st.last > 0 && st.last == st.best
	for _, g := range games[1:] {
		if g.Score >= st.last {
			st.personalBest = false
			break
		}
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.stats.loaded && h.stats.games == 0:
		return MascotSleepy
	case h.stats.personalBest:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	// All sections share a uniform content width so they line up.
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	sections = append(sections, h.menu.View(cw, buttonWidth, compact))

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
