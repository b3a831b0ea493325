package leaderboard

import (
	"context"

	"github.com/sirupsen/logrus"
)

// SafeGateway wraps a Gateway so failures never reach the player. Reads
// degrade to an empty list and failed submissions are logged and dropped.
type SafeGateway struct {
	g   Gateway
	log logrus.FieldLogger
}

// Safe wraps g. A nil log uses the standard logger.
func Safe(g Gateway, log logrus.FieldLogger) *SafeGateway {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SafeGateway{g: g, log: log}
}

// Top returns the list for difficulty, or an empty list on any error.
func (s *SafeGateway) Top(ctx context.Context, difficulty string) []Entry {
	list, err := s.g.Top(ctx, difficulty)
	if err != nil {
		s.log.WithError(err).WithField("difficulty", difficulty).Warn("leaderboard read failed")
		return []Entry{}
	}
	return list
}

// Submit records e and returns the updated list. On failure it returns
// nil and ok is false.
func (s *SafeGateway) Submit(ctx context.Context, e Entry) (list []Entry, ok bool) {
	list, err := s.g.Submit(ctx, e)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"difficulty": e.Difficulty,
			"score":      e.Score,
		}).Warn("leaderboard submit failed")
		return nil, false
	}
	return list, true
}
