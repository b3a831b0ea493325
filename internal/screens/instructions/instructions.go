package instructions

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/ui/components"
	"github.com/abhisek/hedgie/internal/ui/layout"
	"github.com/abhisek/hedgie/internal/ui/theme"
)

type step struct {
	title string
	body  string
}

var steps = []step{
	{"Step One", "Pick PLAY for timed questions at a difficulty, or PLAY BY GRADE for untimed practice."},
	{"Step Two", "Hedgie waits at a hurdle. In timed games the hurdle creeps closer as the clock runs down."},
	{"Step Three", "Type the answer and press Enter. Fractions like 3/4 and decimals like 0.75 both count.\nA correct answer earns 5 points. A miss or timeout costs 4 points and a heart."},
	{"Step Four", "Lose all three hearts and the run is over. Beat the board to save your name in the high scores!"},
}

// InstructionsScreen walks through the rules one step at a time.
type InstructionsScreen struct {
	current int
}

var _ screen.Screen = (*InstructionsScreen)(nil)
var _ screen.KeyHintProvider = (*InstructionsScreen)(nil)

// New creates an InstructionsScreen at the first step.
func New() *InstructionsScreen {
	return &InstructionsScreen{}
}

func (s *InstructionsScreen) Init() tea.Cmd {
	return nil
}

func (s *InstructionsScreen) Title() string {
	return "How to Play"
}

func (s *InstructionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Step"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InstructionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "right", "l", "enter", "space":
		if s.current < len(steps)-1 {
			s.current++
		}
	case "left", "h":
		if s.current > 0 {
			s.current--
		}
	}
	return s, nil
}

// Step returns the zero-based index of the step shown.
func (s *InstructionsScreen) Step() int {
	return s.current
}

func (s *InstructionsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	st := steps[s.current]

	dots := make([]string, len(steps))
	for i := range steps {
		if i <= s.current {
			dots[i] = lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("●")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(theme.Border).Render("○")
		}
	}

	title := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(st.title) +
		"  " + strings.Join(dots, " ")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(cw - 6).Render(st.body)
	counter := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d / %d", s.current+1, len(steps)))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(components.ArcadeCard(title+"\n\n"+body+"\n\n"+counter, cw))
}
