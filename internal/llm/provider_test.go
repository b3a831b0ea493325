package llm

import (
	"context"
	"encoding/json"
	"testing"
)

func TestMockProvider_ReplaysQueue(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Err: &Error{Kind: RateLimited, Provider: "mock"}},
	)

	resp, err := mock.Generate(context.Background(), Request{System: "sys", Prompt: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"a":1}` || resp.Usage.InputTokens != 10 || resp.StopReason != StopEnd {
		t.Fatalf("first reply = %+v", resp)
	}

	if _, err := mock.Generate(context.Background(), Request{Prompt: "second"}); err == nil {
		t.Fatal("expected the queued error")
	} else if kind, _ := KindOf(err); kind != RateLimited {
		t.Fatalf("kind = %v, want rate limited", kind)
	}

	// Drained with no fallthrough.
	_, err = mock.Generate(context.Background(), Request{})
	if kind, ok := KindOf(err); !ok || kind != Unavailable {
		t.Fatalf("expected unavailable once drained, got %v", err)
	}

	calls := mock.Calls()
	if len(calls) != 3 || calls[0].System != "sys" || calls[1].Prompt != "second" {
		t.Fatalf("calls = %+v", calls)
	}
	if mock.ModelID() != "mock" {
		t.Errorf("ModelID() = %q", mock.ModelID())
	}
}

func TestCannedProvider_NeverRunsDry(t *testing.T) {
	p := NewCannedProvider()
	for range 3 {
		resp, err := p.Generate(context.Background(), Request{Prompt: "go"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var env struct {
			Questions []map[string]string `json:"questions"`
		}
		if err := json.Unmarshal(resp.Content, &env); err != nil || len(env.Questions) != 10 {
			t.Fatalf("canned batch = %s (%v)", resp.Content, err)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "anthropic without key",
			cfg:     Config{Provider: "anthropic"},
			wantErr: true,
		},
		{
			name:    "anthropic with key",
			cfg:     Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "openai without key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name:    "openai with key",
			cfg:     Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}},
			wantErr: false,
		},
		{
			name:    "gemini without key",
			cfg:     Config{Provider: "gemini"},
			wantErr: true,
		},
		{
			name:    "openrouter with key",
			cfg:     Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "sk-or"}},
			wantErr: false,
		},
		{
			name:    "mock needs no key",
			cfg:     Config{Provider: "mock"},
			wantErr: false,
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "unknown"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("HEDGIE_LLM_PROVIDER", "anthropic")
	t.Setenv("HEDGIE_ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("HEDGIE_OPENAI_BASE_URL", "http://localhost:9999/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "sk-ant" {
		t.Fatalf("provider/key not read from env: %+v", cfg)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:9999/v1" {
		t.Errorf("OpenAI.BaseURL = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("default OpenAI model = %q", cfg.OpenAI.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("default MaxAttempts = %d, want a single attempt", cfg.Retry.MaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider with no keys set")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	t.Setenv("ANTHROPIC_API_KEY", "a")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" || cfg.Anthropic.APIKey != "a" {
		t.Fatalf("DiscoverConfig() = %+v, %v; want anthropic first", cfg, ok)
	}
}
