package leaderboard

import (
	"context"
	"slices"
	"sync"
)

// Hub decorates a Gateway and fans accepted submissions out to
// subscribers of the affected difficulty.
type Hub struct {
	Gateway

	mu   sync.Mutex
	subs map[string]map[chan []Entry]struct{}
}

// NewHub wraps g.
func NewHub(g Gateway) *Hub {
	return &Hub{Gateway: g, subs: make(map[string]map[chan []Entry]struct{})}
}

// Submit stores e and publishes the new list.
func (h *Hub) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	list, err := h.Gateway.Submit(ctx, e)
	if err != nil {
		return nil, err
	}
	h.publish(list, e.Difficulty)
	return list, nil
}

// Subscribe returns a channel of list updates for difficulty. The caller
// must invoke cancel to release it.
func (h *Hub) Subscribe(difficulty string) (<-chan []Entry, func()) {
	ch := make(chan []Entry, 4)

	h.mu.Lock()
	set, ok := h.subs[difficulty]
	if !ok {
		set = make(map[chan []Entry]struct{})
		h.subs[difficulty] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := set[ch]; ok {
			delete(set, ch)
			close(ch)
		}
		if len(h.subs[difficulty]) == 0 {
			delete(h.subs, difficulty)
		}
	}
	return ch, cancel
}

// Subscribers returns the number of open subscriptions for difficulty.
func (h *Hub) Subscribers(difficulty string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[difficulty])
}

func (h *Hub) publish(list []Entry, difficulty string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[difficulty] {
		update := slices.Clone(list)
		select {
		case ch <- update:
		default:
			// Slow subscriber: drop its oldest update.
			select {
			case <-ch:
			default:
			}
			ch <- update
		}
	}
}
