package session

import "time"

// Summary holds the end-of-game numbers shown to the player and recorded
// as a game event.
type Summary struct {
	ID       string
	Key      string
	Score    int
	Answered int
	Correct  int
	Accuracy float64
	Duration time.Duration
}

// BuildSummary creates a Summary from the current state. A game still in
// progress is measured up to now.
func BuildSummary(s *State) Summary {
	end := s.EndedAt
	if end.IsZero() {
		end = time.Now()
	}

	var accuracy float64
	if s.Answered > 0 {
		accuracy = float64(s.Correct) / float64(s.Answered)
	}

	return Summary{
		ID:       s.ID,
		Key:      s.Key,
		Score:    s.Score,
		Answered: s.Answered,
		Correct:  s.Correct,
		Accuracy: accuracy,
		Duration: end.Sub(s.StartedAt),
	}
}
