package llm

import (
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// OpenRouter lists requests under this app name and referer.
	openRouterTitle   = "Hedgie Number Dash"
	openRouterReferer = "https://github.com/abhisek/hedgie"
)

// NewOpenRouterProvider targets OpenRouter's OpenAI-compatible API. Model
// IDs are namespaced ("openai/gpt-4o-mini") and used verbatim.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = defaultOpenRouterBaseURL
	if cfg.BaseURL != "" {
		c.BaseURL = cfg.BaseURL
	}
	c.HTTPClient = attribution{next: http.DefaultClient}

	return &OpenAIProvider{
		name:   "openrouter",
		client: openai.NewClientWithConfig(c),
		model:  cfg.Model,
	}, nil
}

// attribution adds OpenRouter's app identification headers.
type attribution struct {
	next openai.HTTPDoer
}

func (a attribution) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-Title", openRouterTitle)
	req.Header.Set("HTTP-Referer", openRouterReferer)
	return a.next.Do(req)
}
