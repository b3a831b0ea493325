package leaderboard

import (
	"context"
	"slices"
	"sync"
)

// Gateway reads and updates the per-difficulty top lists.
type Gateway interface {
	// Top returns the list for difficulty, best first. An empty list is
	// not an error.
	Top(ctx context.Context, difficulty string) ([]Entry, error)

	// Submit inserts e and returns the updated list for its difficulty.
	Submit(ctx context.Context, e Entry) ([]Entry, error)
}

// MemoryGateway keeps lists in process memory.
type MemoryGateway struct {
	size int

	mu    sync.Mutex
	lists map[string][]Entry
}

var _ Gateway = (*MemoryGateway)(nil)

// NewMemoryGateway creates an empty in-memory leaderboard keeping size
// entries per difficulty.
func NewMemoryGateway(size int) *MemoryGateway {
	if size <= 0 {
		size = DefaultSize
	}
	return &MemoryGateway{size: size, lists: make(map[string][]Entry)}
}

func (m *MemoryGateway) Top(_ context.Context, difficulty string) ([]Entry, error) {
	if !ValidKey(difficulty) {
		return nil, ErrInvalidDifficulty
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry{}, m.lists[difficulty]...), nil
}

func (m *MemoryGateway) Submit(_ context.Context, e Entry) ([]Entry, error) {
	e, err := validate(e)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	next := Insert(m.lists[e.Difficulty], e, m.size)
	m.lists[e.Difficulty] = next
	return slices.Clone(next), nil
}
