package history

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hedgie/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	games []store.GameEvent
	err   error
	limit int
}

func (m *mockEventRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(context.Context) ([]store.ModelUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendGameEvent(context.Context, store.GameEventData) error {
	return nil
}
func (m *mockEventRepo) RecentGames(_ context.Context, limit int) ([]store.GameEvent, error) {
	m.limit = limit
	return m.games, m.err
}

func testGames() []store.GameEvent {
	ts := time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC)
	return []store.GameEvent{
		{Timestamp: ts, GameEventData: store.GameEventData{
			Action: "end", Mode: "difficulty", Difficulty: "hard", Score: 35, Answered: 12, Correct: 9, DurationSecs: 125,
		}},
		{Timestamp: ts.Add(-time.Hour), GameEventData: store.GameEventData{
			Action: "end", Mode: "grade", Difficulty: "grade:second", Score: 10, Answered: 5, Correct: 2, DurationSecs: 40,
		}},
	}
}

func TestHistoryScreen_Load(t *testing.T) {
	repo := &mockEventRepo{games: testGames()}
	s := New(repo)
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view")
	}

	s.Update(s.Init()())
	if repo.limit != recentLimit {
		t.Errorf("limit = %d, want %d", repo.limit, recentLimit)
	}
	view := s.View(100, 24)
	for _, want := range []string{"Hard", "Grade: Second", "35 pts", "2:05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistoryScreen_Expand(t *testing.T) {
	s := New(&mockEventRepo{games: testGames()})
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(100, 24), "5 hurdles, 2 cleared, 40% accuracy") {
		t.Error("expected expanded details")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&mockEventRepo{})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "No games yet") {
		t.Error("expected empty message")
	}
}

func TestHistoryScreen_Error(t *testing.T) {
	s := New(&mockEventRepo{err: errors.New("disk gone")})
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 24), "disk gone") {
		t.Error("expected error message")
	}
}
