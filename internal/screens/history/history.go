package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/store"
	"github.com/abhisek/hedgie/internal/ui/layout"
	"github.com/abhisek/hedgie/internal/ui/theme"
)

const recentLimit = 50

type historyLoadedMsg struct {
	Games []store.GameEvent
	Err   error
}

// HistoryScreen lists recently finished games.
type HistoryScreen struct {
	eventRepo store.EventRepo
	games     []store.GameEvent
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		games, err := repo.RecentGames(context.Background(), recentLimit)
		return historyLoadedMsg{Games: games, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Recent Games"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.games = msg.Games
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.games)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading games...")
	}
	if len(s.games) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No games yet. Go clear some hurdles!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, g := range s.games {
		dateStr := g.Timestamp.Format("Jan 02 15:04")
		durationStr := fmt.Sprintf("%d:%02d", g.DurationSecs/60, g.DurationSecs%60)

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-16s  %4d pts  %s",
			prefix, dateStr, leaderboard.KeyLabel(g.Difficulty), g.Score, durationStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			var accuracy float64
			if g.Answered > 0 {
				accuracy = float64(g.Correct) / float64(g.Answered) * 100
			}
			detail := fmt.Sprintf("    %d hurdles, %d cleared, %.0f%% accuracy", g.Answered, g.Correct, accuracy)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
