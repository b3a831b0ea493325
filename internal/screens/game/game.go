package game

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/router"
	"github.com/abhisek/hedgie/internal/screen"
	"github.com/abhisek/hedgie/internal/screens/highscore"
	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/source"
	"github.com/abhisek/hedgie/internal/store"
	"github.com/abhisek/hedgie/internal/ui/components"
	"github.com/abhisek/hedgie/internal/ui/layout"
)

const (
	tickInterval = 100 * time.Millisecond
	fetchTimeout = 30 * time.Second
)

// GameScreen runs one game: it owns a session.State and feeds it key
// presses, clock ticks and fetched batches.
type GameScreen struct {
	env         *Env
	mode        Mode
	state       *session.State
	src         source.Source
	input       components.TextInput
	confirmQuit bool
	ended       bool
	log         logrus.FieldLogger
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)
var _ screen.StatusProvider = (*GameScreen)(nil)
var _ screen.EscapeHandler = (*GameScreen)(nil)

// New creates a game for mode.
func New(env *Env, mode Mode) *GameScreen {
	state := session.New(env.configFor(mode), mode.Key())
	return &GameScreen{
		env:   env,
		mode:  mode,
		state: state,
		src:   env.sourceFor(mode),
		input: newAnswerInput(),
		log: env.logger().WithFields(logrus.Fields{
			"game_id": state.ID,
			"mode":    mode.Key(),
		}),
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", true, 20)
}

func (s *GameScreen) Init() tea.Cmd {
	s.log.Info("game started")
	return tea.Batch(
		s.recordEvent("start"),
		s.fetch(true),
		s.input.Init(),
	)
}

func (s *GameScreen) Title() string {
	return s.mode.Label()
}

func (s *GameScreen) HandlesEscape() bool {
	return true
}

func (s *GameScreen) Status() (layout.Status, bool) {
	return layout.Status{
		Score:    s.state.Score,
		Lives:    s.state.Lives,
		MaxLives: s.state.Config.MaxLives,
	}, true
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep going"},
		}
	case s.state.Terminal():
		return []layout.KeyHint{
			{Key: "Enter", Description: "High scores"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Jump"},
			{Key: "Esc", Description: "Quit"},
		}
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case batchLoadedMsg:
		if msg.gameID != s.state.ID {
			return s, nil
		}
		return s.handleBatch(msg)

	case tickMsg:
		if msg.gameID != s.state.ID {
			return s, nil
		}
		return s.handleTick()

	case advanceMsg:
		if msg.gameID != s.state.ID {
			return s, nil
		}
		return s.handleAdvance(msg.gen)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.accepting() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// accepting reports whether keys go to the answer input.
func (s *GameScreen) accepting() bool {
	return s.state.Phase == session.PhasePlaying && !s.confirmQuit
}

func (s *GameScreen) handleBatch(msg batchLoadedMsg) (screen.Screen, tea.Cmd) {
	log := s.log.WithField("questions", len(msg.batch))
	if msg.initial {
		s.state.Load(msg.batch)
		log.Debug("initial batch loaded")

		var cmds []tea.Cmd
		if s.state.Config.Timed() {
			cmds = append(cmds, s.tick())
		}
		cmds = append(cmds, s.replenish())
		return s, tea.Batch(cmds...)
	}

	waiting := s.state.Phase == session.PhaseLoading
	s.state.Append(msg.batch)
	log.WithField("pending", s.state.Pending()).Debug("batch appended")
	if waiting && s.state.Phase == session.PhasePlaying {
		s.input.Reset()
	}
	return s, nil
}

func (s *GameScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.state.Terminal() || s.ended {
		return s, nil
	}
	if s.confirmQuit {
		return s, s.tick()
	}
	out := s.state.Tick(tickInterval)
	if !out.Applied {
		return s, s.tick()
	}
	s.log.WithField("question", s.state.Cursor).Debug("question timed out")
	s.input.Submit(false)
	return s, tea.Batch(s.tick(), s.resolved(out))
}

func (s *GameScreen) handleAdvance(gen int) (screen.Screen, tea.Cmd) {
	if !s.state.Advance(gen) {
		return s, nil
	}
	if s.state.Phase == session.PhasePlaying {
		s.input.Reset()
	}
	return s, s.replenish()
}

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			s.log.Info("game abandoned")
			return s, tea.Sequence(
				s.endGame(),
				func() tea.Msg { return router.PopScreenMsg{} },
			)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if s.state.Terminal() {
		if key == "enter" || key == "esc" {
			sum := session.BuildSummary(s.state)
			next := highscore.NewResult(s.env.Leaderboard(), sum, s.state.Config.LeaderboardSize)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmQuit = true
		return s, nil
	case "enter":
		return s.submit()
	}

	if s.accepting() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *GameScreen) submit() (screen.Screen, tea.Cmd) {
	out := s.state.Submit(s.input.Value())
	if !out.Applied {
		return s, nil
	}
	s.input.Submit(out.Correct)
	return s, s.resolved(out)
}

// resolved schedules what follows an answered or expired question.
func (s *GameScreen) resolved(out session.Outcome) tea.Cmd {
	if out.Terminal {
		s.log.WithFields(logrus.Fields{
			"score":    s.state.Score,
			"answered": s.state.Answered,
		}).Info("game over")
		return s.endGame()
	}

	cmds := []tea.Cmd{s.advanceAfter(out.Generation, out.Delay)}
	if out.Replenish {
		cmds = append(cmds, s.replenish())
	}
	return tea.Batch(cmds...)
}

// replenish starts a background fetch when the queue runs low.
func (s *GameScreen) replenish() tea.Cmd {
	if !s.state.NeedsReplenish() {
		return nil
	}
	s.state.BeginReplenish()
	s.log.WithField("pending", s.state.Pending()).Debug("replenishing questions")
	return s.fetch(false)
}

// endGame records the end event once.
func (s *GameScreen) endGame() tea.Cmd {
	if s.ended {
		return nil
	}
	s.ended = true
	return s.recordEvent("end")
}

func (s *GameScreen) fetch(initial bool) tea.Cmd {
	src := s.src
	id := s.state.ID
	count := s.state.Config.BatchSize
	difficulty := s.mode.Difficulty
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		return batchLoadedMsg{
			gameID:  id,
			initial: initial,
			batch:   src.FetchBatch(ctx, count, difficulty),
		}
	}
}

func (s *GameScreen) tick() tea.Cmd {
	id := s.state.ID
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{gameID: id}
	})
}

func (s *GameScreen) advanceAfter(gen int, delay time.Duration) tea.Cmd {
	id := s.state.ID
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return advanceMsg{gameID: id, gen: gen}
	})
}

func (s *GameScreen) recordEvent(action string) tea.Cmd {
	events := s.env.Events
	if events == nil {
		return nil
	}
	sum := session.BuildSummary(s.state)
	data := store.GameEventData{
		SessionID:  sum.ID,
		Action:     action,
		Mode:       s.mode.kind(),
		Difficulty: sum.Key,
	}
	if action == "end" {
		data.Score = sum.Score
		data.Answered = sum.Answered
		data.Correct = sum.Correct
		data.DurationSecs = int(sum.Duration.Seconds())
	}
	log := s.log
	return func() tea.Msg {
		if err := events.AppendGameEvent(context.Background(), data); err != nil {
			log.WithError(err).WithField("action", action).Warn("record game event failed")
		}
		return nil
	}
}
