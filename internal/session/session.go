package session

import (
	"strings"
	"time"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/problemgen"
)

// Load installs the first batch and starts play. An empty batch is
// replaced by the static practice set.
func (s *State) Load(batch problemgen.Batch) {
	if s.Phase != PhaseLoading || len(s.Batch) > 0 {
		return
	}
	if len(batch) == 0 {
		batch = problemgen.Fallback()
	}
	s.Batch = append(problemgen.Batch(nil), batch...)
	s.Cursor = 0
	s.play()
}

// Submit resolves the active question with the player's input. Blank input
// and input outside the playing phase are ignored.
func (s *State) Submit(input string) Outcome {
	input = strings.TrimSpace(input)
	if input == "" || s.Phase != PhasePlaying {
		return Outcome{}
	}
	q, ok := s.Current()
	if !ok {
		return Outcome{}
	}
	s.LastAnswer = input
	s.TimedOut = false
	return s.resolve(problemgen.IsCorrect(input, q.Answer))
}

// Tick advances the question clock by elapsed. When the clock runs out the
// question is resolved as a miss, once.
func (s *State) Tick(elapsed time.Duration) Outcome {
	if !s.Config.Timed() || s.Phase != PhasePlaying {
		return Outcome{}
	}
	s.Remaining -= elapsed
	if s.Remaining > 0 {
		return Outcome{}
	}
	s.Remaining = 0
	s.LastAnswer = ""
	s.TimedOut = true
	return s.resolve(false)
}

func (s *State) resolve(correct bool) Outcome {
	s.Answered++
	s.Generation++

	out := Outcome{Applied: true, Correct: correct, Generation: s.Generation}
	if correct {
		s.Correct++
		s.Score += s.Config.Reward
		s.Phase = PhaseCorrect
		out.Delay = s.Config.CorrectDelay
	} else {
		s.Score = max(0, s.Score-s.Config.Penalty)
		s.Lives = max(0, s.Lives-1)
		s.Phase = PhaseIncorrect
		out.Delay = s.Config.WrongDelay
		if s.Lives == 0 {
			s.Phase = PhaseGameOver
			s.EndedAt = time.Now()
			out.Terminal = true
			out.Delay = 0
		}
	}
	out.Replenish = s.NeedsReplenish()
	return out
}

// Advance moves past a resolved question. It only applies when gen is the
// current generation and feedback is showing. If the batch is exhausted
// the game waits in the loading phase for the in-flight fetch.
func (s *State) Advance(gen int) bool {
	if gen != s.Generation {
		return false
	}
	if s.Phase != PhaseCorrect && s.Phase != PhaseIncorrect {
		return false
	}
	s.Cursor++
	if s.Cursor >= len(s.Batch) {
		s.Phase = PhaseLoading
		return true
	}
	s.play()
	return true
}

// NeedsReplenish reports whether the driver should fetch more questions.
func (s *State) NeedsReplenish() bool {
	if s.Terminal() || s.Replenishing || len(s.Batch) == 0 {
		return false
	}
	return len(s.Batch)-s.Cursor <= s.Config.LowWater
}

// BeginReplenish marks a fetch as in flight.
func (s *State) BeginReplenish() {
	s.Replenishing = true
}

// Append adds a fetched batch to the end of the queue. Batches arriving
// after the game ended are discarded.
func (s *State) Append(batch problemgen.Batch) {
	s.Replenishing = false
	if s.Terminal() {
		return
	}
	if len(batch) == 0 {
		batch = problemgen.Fallback()
	}
	s.Batch = append(s.Batch, batch...)
	if s.Phase == PhaseLoading && s.Cursor > 0 {
		s.play()
	}
}

// Qualifies reports whether the current score earns a place in top.
func (s *State) Qualifies(top []leaderboard.Entry, n int) bool {
	return leaderboard.Qualifies(top, s.Score, n)
}

func (s *State) play() {
	s.Phase = PhasePlaying
	s.Remaining = s.Config.QuestionTime
}
