package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/router"
	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/screens/game"
	"github.com/abhisek/hedgie/internal/ui/components"
	"github.com/abhisek/hedgie/internal/ui/layout"
	"github.com/abhisek/hedgie/internal/ui/theme"
)

const buttonWidth = 22

// PickerScreen chooses the mode for a new game. Selecting an option
// replaces the picker with the game.
type PickerScreen struct {
	title  string
	prompt string
	menu   components.Menu
}

var _ screen.Screen = (*PickerScreen)(nil)
var _ screen.KeyHintProvider = (*PickerScreen)(nil)

// NewDifficulty offers the timed difficulty tiers.
func NewDifficulty(env *game.Env) *PickerScreen {
	modes := make([]game.Mode, 0, len(problemgen.Difficulties))
	for _, d := range problemgen.Difficulties {
		modes = append(modes, game.DifficultyMode(d))
	}
	return newPicker(env, "Difficulty", "How fast can you go?", modes)
}

// NewGrade offers the grade levels.
func NewGrade(env *game.Env) *PickerScreen {
	modes := make([]game.Mode, 0, len(problemgen.Grades))
	for _, g := range problemgen.Grades {
		modes = append(modes, game.GradeMode(g))
	}
	return newPicker(env, "Grade", "Pick your grade", modes)
}

func newPicker(env *game.Env, title, prompt string, modes []game.Mode) *PickerScreen {
	options := make([]components.Option, 0, len(modes))
	for _, m := range modes {
		options = append(options, components.Option{
			Label: strings.ToUpper(optionLabel(m)),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: game.New(env, m)}
				}
			},
		})
	}
	return &PickerScreen{
		title:  title,
		prompt: prompt,
		menu:   components.NewMenu(options...),
	}
}

func optionLabel(m game.Mode) string {
	if m.Graded() {
		return m.Grade.Label()
	}
	return m.Label()
}

func (p *PickerScreen) Init() tea.Cmd {
	return nil
}

func (p *PickerScreen) Title() string {
	return p.title
}

func (p *PickerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	p.menu, cmd = p.menu.Update(msg)
	return p, cmd
}

func (p *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	prompt := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.ArcadeCyan).
		Bold(true).
		Render(p.prompt)

	menu := p.menu.View(cw, buttonWidth, len(p.menu.Labels())*3+4 > height)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(prompt + "\n\n" + menu)
}
