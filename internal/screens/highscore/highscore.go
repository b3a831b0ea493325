package highscore

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/router"
	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/ui/components"
	"github.com/abhisek/hedgie/internal/ui/layout"
	"github.com/abhisek/hedgie/internal/ui/theme"
)

const requestTimeout = 10 * time.Second

type topLoadedMsg struct {
	key  string
	list []leaderboard.Entry
}

type submittedMsg struct {
	list []leaderboard.Entry
	ok   bool
}

type stage int

const (
	stageLoading stage = iota
	stageEntry
	stageSaving
	stageDone
)

// HighScoreScreen shows the top list for one leaderboard key. After a game
// it also takes the player's name when the score qualifies.
type HighScoreScreen struct {
	scores *leaderboard.SafeGateway
	size   int
	keys   []string
	key    string
	list   []leaderboard.Entry
	stage  stage

	// Set only after a game.
	result *session.Summary
	input  components.TextInput
	saved  bool
	failed bool
}

var _ screen.Screen = (*HighScoreScreen)(nil)
var _ screen.KeyHintProvider = (*HighScoreScreen)(nil)

// New browses the leaderboard starting at key. Left and right move across
// every partition.
func New(scores *leaderboard.SafeGateway, key string, size int) *HighScoreScreen {
	return &HighScoreScreen{
		scores: scores,
		size:   size,
		keys:   leaderboard.Keys(),
		key:    key,
	}
}

// NewResult shows the board for a finished game.
func NewResult(scores *leaderboard.SafeGateway, sum session.Summary, size int) *HighScoreScreen {
	return &HighScoreScreen{
		scores: scores,
		size:   size,
		key:    sum.Key,
		result: &sum,
		input:  components.NewTextInput("Your name", false, leaderboard.MaxNameLength),
	}
}

func (h *HighScoreScreen) Init() tea.Cmd {
	return h.load(h.key)
}

func (h *HighScoreScreen) Title() string {
	return "High Scores"
}

func (h *HighScoreScreen) KeyHints() []layout.KeyHint {
	switch {
	case h.stage == stageEntry:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Skip"},
		}
	case h.result != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Home"},
		}
	default:
		return []layout.KeyHint{
			{Key: "←→", Description: "Level"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

// HandlesEscape keeps Esc for skipping name entry and returning home
// after a game.
func (h *HighScoreScreen) HandlesEscape() bool {
	return h.result != nil
}

func (h *HighScoreScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topLoadedMsg:
		if msg.key != h.key {
			return h, nil
		}
		h.list = msg.list
		h.stage = stageDone
		if h.result != nil && !h.saved && leaderboard.Qualifies(h.list, h.result.Score, h.size) {
			h.stage = stageEntry
			return h, h.input.Init()
		}
		return h, nil

	case submittedMsg:
		h.stage = stageDone
		h.saved = msg.ok
		h.failed = !msg.ok
		if msg.ok {
			h.list = msg.list
		}
		return h, nil

	case tea.KeyMsg:
		return h.handleKey(msg)
	}

	if h.stage == stageEntry {
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}
	return h, nil
}

func (h *HighScoreScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if h.stage == stageEntry {
		switch key {
		case "enter":
			h.stage = stageSaving
			return h, h.submit(h.input.Value())
		case "esc":
			h.stage = stageDone
			return h, nil
		}
		var cmd tea.Cmd
		h.input, cmd = h.input.Update(msg)
		return h, cmd
	}

	if h.result != nil {
		if key == "enter" || key == "esc" {
			return h, func() tea.Msg { return router.PopToRootMsg{} }
		}
		return h, nil
	}

	switch key {
	case "left", "h":
		return h, h.cycle(-1)
	case "right", "l":
		return h, h.cycle(1)
	}
	return h, nil
}

func (h *HighScoreScreen) cycle(step int) tea.Cmd {
	if len(h.keys) == 0 {
		return nil
	}
	i := slices.Index(h.keys, h.key)
	i = (i + step + len(h.keys)) % len(h.keys)
	h.key = h.keys[i]
	h.list = nil
	h.stage = stageLoading
	return h.load(h.key)
}

func (h *HighScoreScreen) load(key string) tea.Cmd {
	scores := h.scores
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return topLoadedMsg{key: key, list: scores.Top(ctx, key)}
	}
}

func (h *HighScoreScreen) submit(name string) tea.Cmd {
	scores := h.scores
	entry := leaderboard.Entry{
		Name:       leaderboard.NormalizeName(name),
		Score:      h.result.Score,
		Difficulty: h.result.Key,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		list, ok := scores.Submit(ctx, entry)
		return submittedMsg{list: list, ok: ok}
	}
}

func (h *HighScoreScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	title := leaderboard.KeyLabel(h.key)
	if h.result == nil {
		title = "◂ " + title + " ▸"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	if h.result != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(fmt.Sprintf("Your score: %d", h.result.Score)))
		b.WriteString("\n\n")
	}

	switch h.stage {
	case stageLoading:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Loading scores..."))
		return b.String()
	case stageEntry:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("New high score! Enter your name:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.input.View()))
		b.WriteString("\n\n")
	case stageSaving:
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Saving...")))
		b.WriteString("\n\n")
	}

	if h.failed {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("Couldn't reach the leaderboard. Score not saved.")))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.ArcadeCard(renderTable(h.list, cw-6), cw)))

	return b.String()
}

// renderTable lays out the list as rank, name and score columns.
func renderTable(list []leaderboard.Entry, width int) string {
	if len(list) == 0 {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No scores yet. Be the first!")
	}

	nameWidth := max(width-12, leaderboard.MaxNameLength)
	lines := make([]string, 0, len(list))
	for i, e := range list {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == 0 {
			style = style.Foreground(theme.ArcadeYellow).Bold(true)
		}
		lines = append(lines, style.Render(
			fmt.Sprintf("%2d. %-*s %6d", i+1, nameWidth, e.Name, e.Score)))
	}
	return strings.Join(lines, "\n")
}
