package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestGeminiProvider(t *testing.T, handler http.HandlerFunc) *GeminiProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:  "test-key",
		Model:   "gemini-flash",
		BaseURL: server.URL,
	})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.5-flash"},
		{"gemini-flash-lite", "gemini-2.5-flash-lite"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func geminiReply(text, finish string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{{
			"content":      map[string]any{"role": "model", "parts": []map[string]any{{"text": text}}},
			"finishReason": finish,
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     30,
			"candidatesTokenCount": 20,
			"totalTokenCount":      50,
		},
		"modelVersion": "gemini-2.5-flash-001",
	}
}

func TestGeminiProvider_HappyPath(t *testing.T) {
	var path string
	var body map[string]any
	p := newTestGeminiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiReply(
			`{"questions":[{"question":"9 × 7 = ___","answer":"63","type":"multiplication"}]}`, "STOP"))
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "You generate mental math drills.",
		Prompt:    "Generate 1 question.",
		Schema:    batchSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(path, "gemini-2.5-flash:generateContent") {
		t.Errorf("request path = %q", path)
	}
	cfg, _ := body["generationConfig"].(map[string]any)
	if cfg["responseMimeType"] != "application/json" || cfg["responseJsonSchema"] == nil {
		t.Errorf("generationConfig = %v", cfg)
	}
	if resp.Usage.TotalTokens != 50 || resp.Model != "gemini-2.5-flash-001" {
		t.Errorf("usage/model = %+v/%q", resp.Usage, resp.Model)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Kind
	}{
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
		}, RateLimited},
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"code":503,"message":"overloaded","status":"UNAVAILABLE"}}`))
		}, Unavailable},
		{"truncated", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(geminiReply(`{"questions":[{"quest`, "MAX_TOKENS"))
		}, Truncated},
		{"off schema", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(geminiReply(`{"questions":[]}`, "STOP"))
		}, Malformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestGeminiProvider(t, tt.handler)
			_, err := p.Generate(context.Background(), Request{Prompt: "go", Schema: batchSchema()})
			if kind, ok := KindOf(err); !ok || kind != tt.want {
				t.Fatalf("got %v, want kind %s", err, tt.want)
			}
		})
	}
}
