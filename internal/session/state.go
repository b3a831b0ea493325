package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/hedgie/internal/problemgen"
)

// Config holds the rules of a game.
type Config struct {
	// Reward is added to the score on a correct answer.
	Reward int

	// Penalty is subtracted on a wrong answer or timeout, never below zero.
	Penalty int

	// MaxLives is the number of misses a player survives minus one.
	MaxLives int

	// QuestionTime is the per-question budget. Zero disables the timer.
	QuestionTime time.Duration

	// BatchSize is the number of questions requested per fetch.
	BatchSize int

	// LowWater triggers a background fetch when this many or fewer
	// questions remain unanswered.
	LowWater int

	// CorrectDelay and WrongDelay are how long feedback stays on screen.
	CorrectDelay time.Duration
	WrongDelay   time.Duration

	// LeaderboardSize is the number of entries kept per difficulty.
	LeaderboardSize int
}

// DefaultConfig returns the standard timed game rules.
func DefaultConfig() Config {
	return Config{
		Reward:          5,
		Penalty:         4,
		MaxLives:        3,
		QuestionTime:    30 * time.Second,
		BatchSize:       20,
		LowWater:        5,
		CorrectDelay:    500 * time.Millisecond,
		WrongDelay:      300 * time.Millisecond,
		LeaderboardSize: 10,
	}
}

// Timed reports whether questions carry a countdown.
func (c Config) Timed() bool {
	return c.QuestionTime > 0
}

// Phase is the current phase of a game.
type Phase int

const (
	PhaseLoading   Phase = iota // Waiting for the first batch
	PhasePlaying                // Accepting answers
	PhaseCorrect                // Showing positive feedback
	PhaseIncorrect              // Showing negative feedback
	PhaseGameOver               // Out of lives
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePlaying:
		return "playing"
	case PhaseCorrect:
		return "correct"
	case PhaseIncorrect:
		return "incorrect"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// State tracks one game. It is owned by a single goroutine; the driver
// feeds it input, clock ticks and fetch results.
type State struct {
	Config Config

	// ID identifies the game in recorded events.
	ID string

	// Key is the leaderboard partition: a difficulty tier or a grade key.
	Key string

	Score int
	Lives int

	// Batch holds every question fetched so far, in order. Cursor indexes
	// the active one.
	Batch  problemgen.Batch
	Cursor int

	// Remaining is the time left on the active question.
	Remaining time.Duration

	Phase Phase

	// Generation is bumped on every resolved question. Delayed transitions
	// carry the generation they were scheduled for and are dropped when it
	// no longer matches.
	Generation int

	// Replenishing is true while a background fetch is in flight.
	Replenishing bool

	Answered int
	Correct  int

	// LastAnswer is the input that resolved the previous question, or
	// empty after a timeout.
	LastAnswer string

	// TimedOut is true when the previous question expired.
	TimedOut bool

	StartedAt time.Time
	EndedAt   time.Time
}

// New creates a game in the loading phase.
func New(cfg Config, key string) *State {
	return &State{
		Config:    cfg,
		ID:        uuid.NewString(),
		Key:       key,
		Lives:     cfg.MaxLives,
		Phase:     PhaseLoading,
		StartedAt: time.Now(),
	}
}

// Outcome describes the result of resolving a question.
type Outcome struct {
	// Applied is false when the input was ignored.
	Applied bool

	Correct bool

	// Generation is the value Advance must be called with.
	Generation int

	// Delay is how long feedback is shown before advancing.
	Delay time.Duration

	// Terminal is true when this resolution ended the game.
	Terminal bool

	// Replenish is true when the driver should start a background fetch.
	Replenish bool
}

// Terminal reports whether the game is over.
func (s *State) Terminal() bool {
	return s.Phase == PhaseGameOver
}

// Current returns the active question.
func (s *State) Current() (problemgen.Question, bool) {
	if s.Phase == PhaseLoading || s.Cursor >= len(s.Batch) {
		return problemgen.Question{}, false
	}
	return s.Batch[s.Cursor], true
}

// Pending returns the number of questions not yet answered, including the
// active one.
func (s *State) Pending() int {
	return max(0, len(s.Batch)-s.Cursor)
}
