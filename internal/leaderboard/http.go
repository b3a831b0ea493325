package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ScoresPath is the high score endpoint served by hedgie serve.
const ScoresPath = "/api/highscores"

// SubmitResponse is the reply to a POST on ScoresPath.
type SubmitResponse struct {
	Success bool    `json:"success"`
	Scores  []Entry `json:"scores"`
}

// HTTPGateway talks to a remote hedgie server.
type HTTPGateway struct {
	url  string
	http *http.Client
}

var _ Gateway = (*HTTPGateway)(nil)

// NewHTTPGateway creates a client for the server at baseURL. A nil client
// gets a 10s timeout.
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{
		url:  strings.TrimRight(baseURL, "/") + ScoresPath,
		http: client,
	}
}

func (h *HTTPGateway) Top(ctx context.Context, difficulty string) ([]Entry, error) {
	if !ValidKey(difficulty) {
		return nil, ErrInvalidDifficulty
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		h.url+"?difficulty="+url.QueryEscape(difficulty), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	var list []Entry
	if err := h.do(req, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Entry{}
	}
	return list, nil
}

func (h *HTTPGateway) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	e, err := validate(e)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal entry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp SubmitResponse
	if err := h.do(req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("%s %s: not accepted", req.Method, ScoresPath)
	}
	return resp.Scores, nil
}

func (h *HTTPGateway) do(req *http.Request, out any) error {
	resp, err := h.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, ScoresPath, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s %s: status %d", req.Method, ScoresPath, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
