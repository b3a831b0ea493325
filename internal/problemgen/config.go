package problemgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every generated question; a question
	// failing any of them is dropped from the batch.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxCount caps the questions requested in one call.
	MaxCount int
}

// DefaultConfig returns a Config with the standard validator chain and
// the generator's sampling settings.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&MathCheckValidator{},
		},
		MaxTokens:   2000,
		Temperature: 1.0,
		MaxCount:    50,
	}
}
