package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// mockBatch is served by the "mock" provider so the full generation path
// (schema check, sanitizing, validators, auditing) runs without a key.
var mockBatch = json.RawMessage(`{"questions":[
	{"question":"48 + 27 = ___","answer":"75","type":"addition"},
	{"question":"91 - 36 = ___","answer":"55","type":"subtraction"},
	{"question":"12 × 8 = ___","answer":"96","type":"multiplication"},
	{"question":"144 ÷ 12 = ___","answer":"12","type":"division"},
	{"question":"15² = ___","answer":"225","type":"squares"},
	{"question":"25% of 80 is ___","answer":"20","type":"percentages"},
	{"question":"3/4 + 1/8 = ___","answer":"7/8","type":"fractions"},
	{"question":"0.6 × 0.5 = ___","answer":"0.3","type":"decimals"},
	{"question":"(7 + 5) × 3 = ___","answer":"36","type":"order_of_operations"},
	{"question":"GCD of 18 and 24 is ___","answer":"6","type":"gcd_lcm"}
]}`)

// MockResponse is one queued reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays queued replies in order and records every request.
// Once the queue is drained it answers with Fallthrough, or fails as
// Unavailable when that is nil.
type MockProvider struct {
	Fallthrough *MockResponse

	mu    sync.Mutex
	queue []MockResponse
	calls []Request
}

// NewMockProvider queues replies for a test.
func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{queue: replies}
}

// NewCannedProvider always answers with a fixed ten-question batch.
func NewCannedProvider() *MockProvider {
	return &MockProvider{Fallthrough: &MockResponse{
		Content: mockBatch,
		Usage:   Usage{InputTokens: 120, OutputTokens: 260, TotalTokens: 380},
	}}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	var r MockResponse
	switch {
	case len(m.queue) > 0:
		r = m.queue[0]
		m.queue = m.queue[1:]
	case m.Fallthrough != nil:
		r = *m.Fallthrough
	default:
		return nil, &Error{Kind: Unavailable, Provider: "mock"}
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return &Response{
		Content:    r.Content,
		Usage:      r.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// Calls returns a copy of the requests received so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
