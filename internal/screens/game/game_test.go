package game

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/problemgen"
	"github.com/abhisek/hedgie/internal/router"
	"github.com/abhisek/hedgie/internal/screens/highscore"
	"github.com/abhisek/hedgie/internal/session"
	"github.com/abhisek/hedgie/internal/store"
)

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	mu     sync.Mutex
	events []store.GameEventData
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
func (m *mockEventRepo) AppendGameEvent(_ context.Context, data store.GameEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return nil
}
func (m *mockEventRepo) RecentGames(context.Context, int) ([]store.GameEvent, error) {
	return nil, nil
}

// staticSource serves the same batch every time.
type staticSource struct {
	batch problemgen.Batch
}

func (s staticSource) FetchBatch(context.Context, int, problemgen.Difficulty) problemgen.Batch {
	return s.batch
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func testBatch(n int) problemgen.Batch {
	b := make(problemgen.Batch, n)
	for i := range b {
		b[i] = problemgen.Question{Text: "1 + 1", Answer: "2", Category: "addition"}
	}
	return b
}

func testGame(t *testing.T) (*GameScreen, *mockEventRepo) {
	t.Helper()
	events := &mockEventRepo{}
	env := &Env{
		Source: staticSource{batch: testBatch(20)},
		Events: events,
		Config: session.DefaultConfig(),
	}
	return New(env, DifficultyMode(problemgen.Medium)), events
}

// loaded returns a game with its first batch delivered.
func loaded(t *testing.T) (*GameScreen, *mockEventRepo) {
	t.Helper()
	s, events := testGame(t)
	s.Update(batchLoadedMsg{gameID: s.state.ID, initial: true, batch: testBatch(20)})
	if s.state.Phase != session.PhasePlaying {
		t.Fatalf("phase = %v, want playing", s.state.Phase)
	}
	return s, events
}

func typeAnswer(s *GameScreen, answer string) {
	for _, r := range answer {
		s.Update(keyPress(r))
	}
	s.Update(enter())
}

func TestGameScreen_Title(t *testing.T) {
	s, _ := testGame(t)
	if s.Title() != "Medium" {
		t.Errorf("Title = %q, want %q", s.Title(), "Medium")
	}
	g := New(&Env{}, GradeMode(problemgen.Third))
	if g.Title() != "Grade: Third" {
		t.Errorf("Title = %q, want %q", g.Title(), "Grade: Third")
	}
}

func TestGameScreen_LoadingView(t *testing.T) {
	s, _ := testGame(t)
	view := s.View(80, 24)
	if !strings.Contains(view, "Setting up") {
		t.Errorf("expected loading message, got %q", view)
	}
}

func TestGameScreen_FetchUsesSource(t *testing.T) {
	s, _ := testGame(t)
	msg := s.fetch(true)()
	loaded, ok := msg.(batchLoadedMsg)
	if !ok {
		t.Fatalf("expected batchLoadedMsg, got %T", msg)
	}
	if !loaded.initial || loaded.gameID != s.state.ID || len(loaded.batch) != 20 {
		t.Errorf("unexpected message: initial=%v id=%q len=%d", loaded.initial, loaded.gameID, len(loaded.batch))
	}
}

func TestGameScreen_CorrectAnswer(t *testing.T) {
	s, _ := loaded(t)

	if !strings.Contains(s.View(80, 24), "1 + 1") {
		t.Error("expected question text in view")
	}

	typeAnswer(s, "2")
	if s.state.Phase != session.PhaseCorrect {
		t.Fatalf("phase = %v, want correct", s.state.Phase)
	}
	if s.state.Score != 5 {
		t.Errorf("score = %d, want 5", s.state.Score)
	}
	if !strings.Contains(s.View(80, 24), "Nice jump") {
		t.Error("expected positive feedback in view")
	}

	s.Update(advanceMsg{gameID: s.state.ID, gen: s.state.Generation})
	if s.state.Phase != session.PhasePlaying || s.state.Cursor != 1 {
		t.Errorf("phase = %v cursor = %d, want playing at 1", s.state.Phase, s.state.Cursor)
	}
	if s.input.Value() != "" || s.input.Submitted() {
		t.Error("expected input reset for next question")
	}
}

func TestGameScreen_WrongAnswerShowsExpected(t *testing.T) {
	s, _ := loaded(t)
	typeAnswer(s, "3")

	if s.state.Phase != session.PhaseIncorrect {
		t.Fatalf("phase = %v, want incorrect", s.state.Phase)
	}
	if s.state.Lives != 2 {
		t.Errorf("lives = %d, want 2", s.state.Lives)
	}
	if !strings.Contains(s.View(80, 24), "The answer was 2") {
		t.Error("expected the correct answer in view")
	}
}

func TestGameScreen_LettersIgnored(t *testing.T) {
	s, _ := loaded(t)
	for _, r := range "abc" {
		s.Update(keyPress(r))
	}
	if s.input.Value() != "" {
		t.Errorf("input = %q, want empty", s.input.Value())
	}
	s.Update(enter())
	if s.state.Answered != 0 {
		t.Error("blank submission should be ignored")
	}
}

func TestGameScreen_StaleMessagesIgnored(t *testing.T) {
	s, _ := loaded(t)
	typeAnswer(s, "2")

	s.Update(advanceMsg{gameID: "another-game", gen: s.state.Generation})
	if s.state.Phase != session.PhaseCorrect {
		t.Error("advance from another game should be ignored")
	}
	s.Update(advanceMsg{gameID: s.state.ID, gen: s.state.Generation - 1})
	if s.state.Phase != session.PhaseCorrect {
		t.Error("advance for an old generation should be ignored")
	}

	before := len(s.state.Batch)
	s.Update(batchLoadedMsg{gameID: "another-game", batch: testBatch(5)})
	if len(s.state.Batch) != before {
		t.Error("batch from another game should be ignored")
	}
}

func TestGameScreen_Timeout(t *testing.T) {
	s, _ := loaded(t)
	ticks := int(s.state.Config.QuestionTime / tickInterval)

	for range ticks - 1 {
		s.Update(tickMsg{gameID: s.state.ID})
	}
	if s.state.Phase != session.PhasePlaying {
		t.Fatalf("expired early: phase = %v", s.state.Phase)
	}

	s.Update(tickMsg{gameID: s.state.ID})
	if s.state.Phase != session.PhaseIncorrect || !s.state.TimedOut {
		t.Fatalf("phase = %v timedOut = %v, want incorrect after timeout", s.state.Phase, s.state.TimedOut)
	}
	if s.state.Lives != 2 {
		t.Errorf("lives = %d, want 2", s.state.Lives)
	}
	if !strings.Contains(s.View(80, 24), "Time's up") {
		t.Error("expected timeout feedback in view")
	}

	typeAnswer(s, "2")
	if s.state.Answered != 1 {
		t.Error("answer after timeout should be ignored")
	}
}

func TestGameScreen_QuitConfirmPausesClock(t *testing.T) {
	s, events := loaded(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if !s.confirmQuit {
		t.Fatal("expected quit confirmation")
	}
	remaining := s.state.Remaining
	s.Update(tickMsg{gameID: s.state.ID})
	if s.state.Remaining != remaining {
		t.Error("clock should pause while confirming")
	}

	s.Update(keyPress('n'))
	if s.confirmQuit {
		t.Fatal("expected confirmation dismissed")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected commands on quit")
	}
	if !s.ended {
		t.Error("expected game marked ended")
	}
	if s.endGame() != nil {
		t.Error("end event should be recorded once")
	}
	if len(events.events) != 0 {
		t.Errorf("events recorded before the command ran: %+v", events.events)
	}
}

func TestGameScreen_GameOver(t *testing.T) {
	s, events := loaded(t)

	typeAnswer(s, "3")
	s.Update(advanceMsg{gameID: s.state.ID, gen: s.state.Generation})
	typeAnswer(s, "3")
	s.Update(advanceMsg{gameID: s.state.ID, gen: s.state.Generation})
	typeAnswerKeys(s, "3")
	_, cmd := s.Update(enter())

	if !s.state.Terminal() {
		t.Fatalf("phase = %v, want game over", s.state.Phase)
	}
	if cmd == nil {
		t.Fatal("expected end event command")
	}
	cmd()
	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	end := events.events[0]
	if end.Action != "end" || end.Mode != "difficulty" || end.Difficulty != "medium" || end.Answered != 3 {
		t.Errorf("unexpected end event: %+v", end)
	}
	if !strings.Contains(s.View(80, 24), "GAME OVER") {
		t.Error("expected game over view")
	}

	// Ticks stop after game over.
	if _, cmd := s.Update(tickMsg{gameID: s.state.ID}); cmd != nil {
		t.Error("expected tick loop to stop")
	}

	_, cmd = s.Update(enter())
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := replace.Screen.(*highscore.HighScoreScreen); !ok {
		t.Errorf("expected high score screen, got %T", replace.Screen)
	}
}

func typeAnswerKeys(s *GameScreen, answer string) {
	for _, r := range answer {
		s.Update(keyPress(r))
	}
}

func TestGameScreen_StartEvent(t *testing.T) {
	s, events := testGame(t)
	s.recordEvent("start")()
	if len(events.events) != 1 {
		t.Fatalf("events = %d, want 1", len(events.events))
	}
	e := events.events[0]
	if e.Action != "start" || e.SessionID != s.state.ID || e.Difficulty != "medium" {
		t.Errorf("unexpected start event: %+v", e)
	}
}

func TestGameScreen_ReplenishAtLowWater(t *testing.T) {
	s, _ := loaded(t)
	cfg := s.state.Config
	answers := cfg.BatchSize - cfg.LowWater

	var fetches int
	step := func(msg tea.Msg) {
		was := s.state.Replenishing
		s.Update(msg)
		if !was && s.state.Replenishing {
			fetches++
		}
	}
	for i := 0; i < answers; i++ {
		typeAnswerKeys(s, "2")
		step(enter())
		step(advanceMsg{gameID: s.state.ID, gen: s.state.Generation})
	}
	if !s.state.Replenishing {
		t.Fatal("expected a fetch in flight at the low-water mark")
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}

	s.Update(batchLoadedMsg{gameID: s.state.ID, batch: testBatch(20)})
	if s.state.Replenishing {
		t.Error("expected in-flight flag cleared")
	}
	if len(s.state.Batch) != 40 {
		t.Errorf("batch len = %d, want 40", len(s.state.Batch))
	}
}

func TestGameScreen_GradeModeUntimed(t *testing.T) {
	s := New(&Env{Config: session.DefaultConfig()}, GradeMode(problemgen.First))
	if s.state.Config.Timed() {
		t.Fatal("grade mode should be untimed")
	}

	msg := s.fetch(true)().(batchLoadedMsg)
	if len(msg.batch) != s.state.Config.BatchSize {
		t.Errorf("batch len = %d, want %d", len(msg.batch), s.state.Config.BatchSize)
	}
	s.Update(msg)

	remaining := s.state.Remaining
	for range 500 {
		s.Update(tickMsg{gameID: s.state.ID})
	}
	if s.state.Phase != session.PhasePlaying || s.state.Remaining != remaining {
		t.Error("ticks should not affect an untimed game")
	}
	if s.state.Key != "grade:first" {
		t.Errorf("key = %q, want grade:first", s.state.Key)
	}
}

func TestGameScreen_Status(t *testing.T) {
	s, _ := loaded(t)
	typeAnswer(s, "2")
	st, ok := s.Status()
	if !ok || st.Score != 5 || st.Lives != 3 || st.MaxLives != 3 {
		t.Errorf("Status = %+v, %v", st, ok)
	}
}

func TestEnv_DefaultLeaderboard(t *testing.T) {
	env := &Env{}
	board := env.Leaderboard()
	if board == nil || env.Leaderboard() != board {
		t.Fatal("expected one lazily created board")
	}
	list, ok := board.Submit(context.Background(), leaderboard.Entry{Name: "amy", Score: 10, Difficulty: "easy"})
	if !ok || len(list) != 1 {
		t.Errorf("submit = %v, %v", list, ok)
	}
}
