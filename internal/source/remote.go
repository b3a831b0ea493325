package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/hedgie/internal/problemgen"
)

// GeneratePath is the question-generation endpoint served by hedgie serve.
const GeneratePath = "/api/generate-questions"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// RemoteConfig configures the HTTP question source.
type RemoteConfig struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// Timeout bounds one fetch. Defaults to 20s when zero.
	Timeout time.Duration

	// HTTPClient allows injecting a custom client (useful for testing).
	HTTPClient *http.Client
}

// Remote fetches batches from a question-generation endpoint.
type Remote struct {
	url     string
	timeout time.Duration
	http    *http.Client
}

// NewRemote creates a Remote for cfg.
func NewRemote(cfg RemoteConfig) *Remote {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Remote{
		url:     strings.TrimRight(cfg.BaseURL, "/") + GeneratePath,
		timeout: cfg.Timeout,
		http:    httpClient,
	}
}

type generateRequest struct {
	Count      int    `json:"count"`
	Difficulty string `json:"difficulty"`
}

// Fetch posts {count, difficulty} and parses the {questions:[...]} reply.
func (r *Remote) Fetch(ctx context.Context, count int, difficulty problemgen.Difficulty) (problemgen.Batch, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{Count: count, Difficulty: string(difficulty)})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", GeneratePath, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("post %s: status %d", GeneratePath, resp.StatusCode)
	}

	b, err := problemgen.ParseBatch(raw)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return b, nil
}
