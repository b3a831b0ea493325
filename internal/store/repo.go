package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// GameEventData records a game session lifecycle transition.
type GameEventData struct {
	SessionID    string
	Action       string // "start" or "end"
	Mode         string // "difficulty" or "grade"
	Difficulty   string
	Score        int
	Answered     int
	Correct      int
	DurationSecs int
}

// GameEvent is a stored game event.
type GameEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GameEventData
}

// HighScore is a stored leaderboard row.
type HighScore struct {
	Name       string
	Score      int
	Difficulty string
	CreatedAt  time.Time
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendGameEvent records a game session start or end.
	AppendGameEvent(ctx context.Context, data GameEventData) error

	// RecentGames returns the most recent "end" events, newest first.
	RecentGames(ctx context.Context, limit int) ([]GameEvent, error)
}

// HighScoreRepo persists per-difficulty top-N lists.
type HighScoreRepo interface {
	// Top returns up to limit entries ordered by score descending, ties in
	// insertion order.
	Top(ctx context.Context, difficulty string, limit int) ([]HighScore, error)

	// Insert stores an entry and prunes the list for its difficulty down to
	// keep rows, in one transaction.
	Insert(ctx context.Context, hs HighScore, keep int) error
}
