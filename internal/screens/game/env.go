package game

import (
	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/logging"
	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/source"
	"github.com/abhisek/hedgie/internal/store"
)

// Mode selects how questions are produced and which leaderboard a game
// counts toward. Exactly one of Difficulty and Grade is set.
type Mode struct {
	Difficulty problemgen.Difficulty
	Grade      problemgen.GradeTier
}

// DifficultyMode plays timed generated questions at d.
func DifficultyMode(d problemgen.Difficulty) Mode {
	return Mode{Difficulty: d}
}

// GradeMode plays untimed template questions for g.
func GradeMode(g problemgen.GradeTier) Mode {
	return Mode{Grade: g}
}

// Graded reports whether the mode uses grade templates.
func (m Mode) Graded() bool {
	return m.Grade != ""
}

// Key is the leaderboard partition for the mode.
func (m Mode) Key() string {
	if m.Graded() {
		return m.Grade.Key()
	}
	return m.Difficulty.Key()
}

// Label is the display name of the mode.
func (m Mode) Label() string {
	return leaderboard.KeyLabel(m.Key())
}

// kind is the mode name recorded in game events.
func (m Mode) kind() string {
	if m.Graded() {
		return "grade"
	}
	return "difficulty"
}

// Env holds what a game needs from the rest of the app.
type Env struct {
	// Source serves difficulty-mode batches. Nil means the static set.
	Source source.Source

	// Grades backs grade-mode sources. Nil means a time-seeded generator.
	Grades *problemgen.LocalGenerator

	// Scores is the leaderboard. Nil means an in-memory board.
	Scores *leaderboard.SafeGateway

	// Events records game start and end. Nil disables recording.
	Events store.EventRepo

	Config session.Config
	Log    logrus.FieldLogger
}

func (e *Env) sourceFor(m Mode) source.Source {
	if m.Graded() {
		return source.NewLocal(e.Grades, m.Grade)
	}
	if e.Source == nil {
		return source.Static{}
	}
	return e.Source
}

// configFor returns the rules for m. Grade mode has no timer.
func (e *Env) configFor(m Mode) session.Config {
	cfg := e.Config
	if cfg.MaxLives == 0 {
		cfg = session.DefaultConfig()
	}
	if m.Graded() {
		cfg.QuestionTime = 0
	}
	return cfg
}

func (e *Env) logger() logrus.FieldLogger {
	if e.Log == nil {
		return logging.Discard()
	}
	return e.Log
}

// Leaderboard returns the configured board, creating an in-memory one on
// first use when none was given.
func (e *Env) Leaderboard() *leaderboard.SafeGateway {
	if e.Scores == nil {
		e.Scores = leaderboard.Safe(leaderboard.NewMemoryGateway(e.BoardSize()), e.logger())
	}
	return e.Scores
}

// BoardSize is the number of entries kept per leaderboard.
func (e *Env) BoardSize() int {
	return e.configFor(Mode{}).LeaderboardSize
}
