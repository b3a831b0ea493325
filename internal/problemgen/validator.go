package problemgen

import "fmt"

// Validator checks a generated question for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs, e.g.
	// "structural", "math-check", "answer-format".
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *Question) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// validate runs the chain in order and stops at the first failure.
func validate(q *Question, chain []Validator) *ValidationError {
	for _, v := range chain {
		if verr := v.Validate(q); verr != nil {
			return verr
		}
	}
	return nil
}
