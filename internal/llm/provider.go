// Package llm asks a hosted model for question batches.
//
// Each vendor adapter turns a Request into one structured-output call and
// returns the reply as raw JSON already checked against the request's
// Schema. Decorators add auditing, optional retries and a deadline; see
// NewProvider for the order they are stacked in.
package llm

import (
	"context"
	"encoding/json"
)

// PurposeQuestionGen labels batch generation calls in the audit log.
const PurposeQuestionGen = "question-gen"

// Provider makes a single structured-output call.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt. Every call this module makes is one
// system prompt plus one user message.
type Request struct {
	// Purpose is recorded with the audit event, e.g. PurposeQuestionGen.
	Purpose string

	System string
	Prompt string

	// Schema, when set, is sent as the vendor's structured-output format
	// and the reply is checked against it before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// StopReason is normalized across vendors.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response holds the model's reply.
type Response struct {
	// Content is the reply JSON, validated when the request had a Schema.
	Content json.RawMessage

	Usage Usage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	StopReason StopReason
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a vendor model ID. Unknown
// names pass through so full IDs work too.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
