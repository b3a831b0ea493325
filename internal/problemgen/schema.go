package problemgen

import "github.com/abhisek/hedgie/internal/llm"

// BatchSchema defines the JSON schema for a generated question batch.
// Strict structured output needs an object root, so the array is wrapped.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of mental math questions with textual answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question text, using ___ for the blank",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "The answer as an integer, decimal or a/b fraction",
						},
						"type": map[string]any{
							"type":        "string",
							"description": "Question category, e.g. addition, squares, gcd_lcm",
						},
					},
					"required":             []any{"question", "answer", "type"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
