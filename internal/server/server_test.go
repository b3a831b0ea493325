package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/hedgie/internal/leaderboard"
	"github.com/abhisek/hedgie/internal/llm"
	"github.com/abhisek/hedgie/internal/problemgen"
)

type fakeGenerator struct {
	calls   atomic.Int32
	err     error
	release chan struct{}

	mu   sync.Mutex
	last struct {
		count      int
		difficulty problemgen.Difficulty
	}
}

func (f *fakeGenerator) Generate(_ context.Context, count int, d problemgen.Difficulty) (problemgen.Batch, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last.count, f.last.difficulty = count, d
	f.mu.Unlock()
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return problemgen.Batch{{Text: "2 + 2", Answer: "4", Category: "addition"}}, nil
}

func (f *fakeGenerator) lastCall() (int, problemgen.Difficulty) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last.count, f.last.difficulty
}

func newTestServer(t *testing.T, gen problemgen.BatchGenerator) (*httptest.Server, *leaderboard.Hub) {
	t.Helper()
	log, _ := test.NewNullLogger()
	hub := leaderboard.NewHub(leaderboard.NewMemoryGateway(10))
	ts := httptest.NewServer(New(gen, hub, log).Routes())
	t.Cleanup(ts.Close)
	return ts, hub
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]any
	json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantCount      int
		wantDifficulty problemgen.Difficulty
	}{
		{"defaults", `{}`, 10, problemgen.Medium},
		{"empty body", ``, 10, problemgen.Medium},
		{"explicit", `{"count":20,"difficulty":"hard"}`, 20, problemgen.Hard},
		{"clamped high", `{"count":500,"difficulty":"easy"}`, 50, problemgen.Easy},
		{"clamped low", `{"count":0}`, 1, problemgen.Medium},
		{"unknown difficulty", `{"count":5,"difficulty":"extreme"}`, 5, problemgen.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{}
			ts, _ := newTestServer(t, gen)

			resp, out := post(t, ts.URL+"/api/generate-questions", tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			count, difficulty := gen.lastCall()
			assert.Equal(t, tt.wantCount, count)
			assert.Equal(t, tt.wantDifficulty, difficulty)

			questions, ok := out["questions"].([]any)
			require.True(t, ok, "response %v", out)
			require.Len(t, questions, 1)
			assert.Equal(t, map[string]any{"question": "2 + 2", "answer": "4", "type": "addition"}, questions[0])
		})
	}
}

func TestGenerate_Failure(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{err: errors.New("provider down")})

	resp, out := post(t, ts.URL+"/api/generate-questions", `{"count":5}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to generate questions", out["error"])
}

func TestGenerate_MalformedBody(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})
	resp, _ := post(t, ts.URL+"/api/generate-questions", `{"count":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGenerate_CoalescesIdenticalRequests(t *testing.T) {
	gen := &fakeGenerator{release: make(chan struct{})}
	ts, _ := newTestServer(t, gen)

	const n = 5
	var wg sync.WaitGroup
	codes := make(chan int, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(ts.URL+"/api/generate-questions", "application/json",
				strings.NewReader(`{"count":10,"difficulty":"easy"}`))
			if err != nil {
				codes <- 0
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}()
	}

	// Wait for the first call to reach the generator, then give the rest
	// time to join it.
	require.Eventually(t, func() bool { return gen.calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(gen.release)
	wg.Wait()
	close(codes)

	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Less(t, int(gen.calls.Load()), n)
}

// ctxGenerator blocks until released or until its context ends.
type ctxGenerator struct {
	calls   atomic.Int32
	release chan struct{}
}

func (g *ctxGenerator) Generate(ctx context.Context, _ int, _ problemgen.Difficulty) (problemgen.Batch, error) {
	g.calls.Add(1)
	select {
	case <-g.release:
		return problemgen.Batch{{Text: "6 × 7", Answer: "42", Category: "multiplication"}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestGenerate_FirstClientLeavingDoesNotFailOthers(t *testing.T) {
	gen := &ctxGenerator{release: make(chan struct{})}
	ts, _ := newTestServer(t, gen)
	body := `{"count":10,"difficulty":"hard"}`

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	first := make(chan error, 1)
	go func() {
		req, _ := http.NewRequestWithContext(ctx, http.MethodPost, ts.URL+"/api/generate-questions", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
		}
		first <- err
	}()
	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	second := make(chan *http.Response, 1)
	go func() {
		resp, err := http.Post(ts.URL+"/api/generate-questions", "application/json", strings.NewReader(body))
		if err != nil {
			second <- nil
			return
		}
		second <- resp
	}()
	// Let the second request join the running call, then drop the first.
	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)
	// The server needs a moment to notice the closed connection.
	time.Sleep(50 * time.Millisecond)
	close(gen.release)

	resp := <-second
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out generateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "6 × 7", out.Questions[0].Question)
	assert.Equal(t, int32(1), gen.calls.Load(), "both requests share one generator call")
}

func TestGenerate_WithLLMGenerator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"questions":[
			{"question":"12 × 12 = ___","answer":"144","type":"multiplication"},
			{"question":"9 + 9 = ___","answer":"17","type":"addition"}]}`),
	})
	log, _ := test.NewNullLogger()
	ts, _ := newTestServer(t, problemgen.New(mock, problemgen.DefaultConfig(), log))

	resp, out := post(t, ts.URL+"/api/generate-questions", `{"count":2,"difficulty":"easy"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	questions := out["questions"].([]any)
	require.Len(t, questions, 1, "the miscomputed item is dropped")
	assert.Equal(t, "12 × 12", questions[0].(map[string]any)["question"])
}

func TestHighScores(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(ts.URL + "/api/highscores?difficulty=easy")
	require.NoError(t, err)
	var list []leaderboard.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, list)

	resp, out := post(t, ts.URL+"/api/highscores",
		`{"name":"  a name that is far too long to keep ","score":42,"difficulty":"easy"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, out["success"])
	scores := out["scores"].([]any)
	require.Len(t, scores, 1)
	first := scores[0].(map[string]any)
	assert.Equal(t, "a name that is far t", first["name"])
	assert.Equal(t, float64(42), first["score"])

	resp, err = http.Get(ts.URL + "/api/highscores?difficulty=easy")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Len(t, list, 1)
}

func TestHighScores_Invalid(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})

	resp, err := http.Get(ts.URL + "/api/highscores?difficulty=extreme")
	require.NoError(t, err)
	var out map[string]string
	json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid difficulty", out["error"])

	for _, body := range []string{
		`{"score":10,"difficulty":"easy"}`,
		`{"name":"amy","difficulty":"easy"}`,
		`{"name":"amy","score":"ten","difficulty":"easy"}`,
		`{"name":"amy","score":-1,"difficulty":"easy"}`,
		`{"name":"amy","score":1.5,"difficulty":"easy"}`,
		`{"name":"amy","score":10,"difficulty":"impossible"}`,
		`not json`,
	} {
		resp, _ := post(t, ts.URL+"/api/highscores", body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func TestHighScores_GradeKey(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})
	resp, _ := post(t, ts.URL+"/api/highscores", `{"name":"kid","score":25,"difficulty":"grade:second"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHighScores_HTTPGatewayRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})
	g := leaderboard.NewHTTPGateway(ts.URL, nil)
	ctx := context.Background()

	_, err := g.Submit(ctx, leaderboard.Entry{Name: "amy", Score: 30, Difficulty: "hard"})
	require.NoError(t, err)
	list, err := g.Submit(ctx, leaderboard.Entry{Name: "bo", Score: 50, Difficulty: "hard"})
	require.NoError(t, err)
	assert.Equal(t, "bo", list[0].Name)

	top, err := g.Top(ctx, "hard")
	require.NoError(t, err)
	assert.Len(t, top, 2)
}

func dialWS(t *testing.T, ts *httptest.Server, difficulty string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + WSPath + "?difficulty=" + difficulty
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readScores(t *testing.T, conn *websocket.Conn) ScoresMessage {
	t.Helper()
	var msg ScoresMessage
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestScoresWebSocket(t *testing.T) {
	ts, hub := newTestServer(t, &fakeGenerator{})
	conn := dialWS(t, ts, "medium")

	msg := readScores(t, conn)
	assert.Equal(t, "scores", msg.Type)
	assert.Empty(t, msg.Payload)

	require.Eventually(t, func() bool { return hub.Subscribers("medium") == 1 }, 2*time.Second, 5*time.Millisecond)

	resp, _ := post(t, ts.URL+"/api/highscores", `{"name":"amy","score":15,"difficulty":"medium"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	msg = readScores(t, conn)
	assert.Equal(t, "scores", msg.Type)
	require.Len(t, msg.Payload, 1)
	assert.Equal(t, "amy", msg.Payload[0].Name)
}

func TestScoresWebSocket_InvalidDifficulty(t *testing.T) {
	ts, _ := newTestServer(t, &fakeGenerator{})
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + WSPath + "?difficulty=nope"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScoresWebSocket_Disconnect(t *testing.T) {
	ts, hub := newTestServer(t, &fakeGenerator{})
	conn := dialWS(t, ts, "easy")
	readScores(t, conn)
	require.Eventually(t, func() bool { return hub.Subscribers("easy") == 1 }, 2*time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.Subscribers("easy") == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	log, _ := test.NewNullLogger()
	s := New(&fakeGenerator{}, leaderboard.NewHub(leaderboard.NewMemoryGateway(10)), log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, HTTPConfig{Addr: "127.0.0.1:0"}) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
