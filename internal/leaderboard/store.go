package leaderboard

import (
	"context"

	"github.com/abhisek/hedgie/internal/store"
)

// StoreGateway keeps lists in the local sqlite database.
type StoreGateway struct {
	repo store.HighScoreRepo
	size int
}

var _ Gateway = (*StoreGateway)(nil)

// NewStoreGateway creates a gateway over repo keeping size entries per
// difficulty.
func NewStoreGateway(repo store.HighScoreRepo, size int) *StoreGateway {
	if size <= 0 {
		size = DefaultSize
	}
	return &StoreGateway{repo: repo, size: size}
}

func (s *StoreGateway) Top(ctx context.Context, difficulty string) ([]Entry, error) {
	if !ValidKey(difficulty) {
		return nil, ErrInvalidDifficulty
	}
	rows, err := s.repo.Top(ctx, difficulty, s.size)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, len(rows))
	for i, hs := range rows {
		out[i] = Entry{Name: hs.Name, Score: hs.Score, Difficulty: hs.Difficulty}
	}
	return out, nil
}

func (s *StoreGateway) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	e, err := validate(e)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Insert(ctx, store.HighScore{
		Name:       e.Name,
		Score:      e.Score,
		Difficulty: e.Difficulty,
	}, s.size); err != nil {
		return nil, err
	}
	return s.Top(ctx, e.Difficulty)
}
