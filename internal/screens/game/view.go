package game

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/ui/components"
	"github.com/abhisek/hedgie/internal/ui/theme"
)

func (s *GameScreen) View(width, height int) string {
	if s.confirmQuit {
		return renderQuitConfirm(width)
	}
	switch s.state.Phase {
	case session.PhaseGameOver:
		return s.renderGameOver(width)
	case session.PhaseLoading:
		return s.renderLoading(width)
	}
	return s.renderTrack(width)
}

func centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// renderTrack renders the running game: clock, track, question and input.
func (s *GameScreen) renderTrack(width int) string {
	state := s.state
	cw := components.ContentWidth(width)

	var b strings.Builder

	info := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("Hurdle %d", state.Answered+1))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, info))
	b.WriteString("\n")

	if state.Config.Timed() {
		bar := components.ProgressBar{
			Label:   fmt.Sprintf("%2ds", int(math.Ceil(state.Remaining.Seconds()))),
			Percent: s.timeLeft(),
			Width:   cw,
			Low:     0.25,
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	strip := components.NewHurdleStrip(cw, s.approach(), s.pose())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strip.View()))
	b.WriteString("\n\n")

	if q, ok := state.Current(); ok {
		card := components.ArcadeCard(
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Text), cw)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width, lipgloss.NewStyle(), "Answer: "+s.input.View()))
	b.WriteString("\n\n")
	b.WriteString(s.renderFeedback(width))

	return b.String()
}

func (s *GameScreen) renderFeedback(width int) string {
	state := s.state
	switch state.Phase {
	case session.PhaseCorrect:
		return centered(width, theme.Correct,
			fmt.Sprintf("Nice jump! +%d", state.Config.Reward))
	case session.PhaseIncorrect:
		q, _ := state.Current()
		headline := "Ouch!"
		if state.TimedOut {
			headline = "Time's up!"
		}
		return centered(width, theme.Incorrect, headline) + "\n" +
			centered(width, lipgloss.NewStyle().Foreground(theme.TextDim),
				fmt.Sprintf("The answer was %s", q.Answer))
	}
	return ""
}

// timeLeft is the fraction of the question clock remaining.
func (s *GameScreen) timeLeft() float64 {
	total := s.state.Config.QuestionTime
	if total <= 0 {
		return 1
	}
	return min(max(float64(s.state.Remaining)/float64(total), 0), 1)
}

// approach places the hurdle: it closes in as the clock runs down. An
// untimed game keeps it halfway.
func (s *GameScreen) approach() float64 {
	if !s.state.Config.Timed() {
		return 0.5
	}
	return 1 - s.timeLeft()
}

func (s *GameScreen) pose() components.Pose {
	switch s.state.Phase {
	case session.PhaseCorrect:
		return components.PoseJumping
	case session.PhaseIncorrect, session.PhaseGameOver:
		return components.PoseStumbling
	}
	return components.PoseWaiting
}

func (s *GameScreen) renderLoading(width int) string {
	text := "Setting up the hurdles..."
	if s.state.Cursor > 0 {
		text = "Fetching more hurdles..."
	}
	return "\n\n\n" + centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), text)
}

func (s *GameScreen) renderGameOver(width int) string {
	sum := session.BuildSummary(s.state)
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Error).Bold(true), "GAME OVER"))
	b.WriteString("\n\n")

	strip := components.NewHurdleStrip(cw, 1, components.PoseStumbling)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strip.View()))
	b.WriteString("\n\n")

	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true),
		fmt.Sprintf("Final score: %d", sum.Score)))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Hurdles: %d    Cleared: %d    Accuracy: %.0f%%",
			sum.Answered, sum.Correct, sum.Accuracy*100)))
	b.WriteString("\n\n")
	b.WriteString(centered(width, theme.Hint, "Press Enter to see the high scores"))

	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Text).Bold(true), "End this game?"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.TextDim), "Your score will not be saved."))
	b.WriteString("\n\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Success), "[Y] Yes, end game"))
	b.WriteString("\n")
	b.WriteString(centered(width, lipgloss.NewStyle().Foreground(theme.Primary), "[N] No, keep going"))
	return b.String()
}
