package problemgen

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/hedgie/internal/llm"
)

// LLMGenerator implements BatchGenerator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	log      logrus.FieldLogger
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *LLMGenerator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LLMGenerator{provider: provider, config: cfg, log: log}
}

// Generate asks the provider for count questions, then sanitizes,
// validates and dedups them. Invalid items are dropped, not retried.
func (g *LLMGenerator) Generate(ctx context.Context, count int, difficulty Difficulty) (Batch, error) {
	if count < 1 {
		count = 1
	}
	if g.config.MaxCount > 0 && count > g.config.MaxCount {
		count = g.config.MaxCount
	}
	req := llm.Request{
		Purpose:     llm.PurposeQuestionGen,
		System:      buildSystemPrompt(difficulty, count),
		Prompt:      buildUserMessage(difficulty, count),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	items, err := ParseItems(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	candidates := Sanitize(items)
	batch := make(Batch, 0, len(candidates))
	for _, q := range candidates {
		if verr := validate(&q, g.config.Validators); verr != nil {
			g.log.WithFields(logrus.Fields{
				"question": q.Text,
				"answer":   q.Answer,
			}).WithError(verr).Debug("dropping generated question")
			continue
		}
		batch = append(batch, q)
	}

	batch, dups := dedup(batch)
	dropped := len(items) - len(batch)
	if dropped > 0 {
		g.log.WithFields(logrus.Fields{
			"difficulty": difficulty,
			"requested":  count,
			"dropped":    dropped,
			"duplicates": dups,
		}).Info("filtered generated batch")
	}

	if len(batch) == 0 {
		return nil, fmt.Errorf("generate %s batch: %w", difficulty, ErrNoQuestions)
	}
	if len(batch) > count {
		batch = batch[:count]
	}
	return batch, nil
}
