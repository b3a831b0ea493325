package problemgen

import (
	"fmt"
	"unicode/utf8"
)

const (
	maxTextLen   = 300
	maxAnswerLen = 32
)

// StructuralValidator checks that required fields are present and within
// length limits, and that no answer blank survived sanitizing.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *Question) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
	}

	switch {
	case q.Text == "":
		return fail("question is empty")
	case utf8.RuneCountInString(q.Text) > maxTextLen:
		return fail(fmt.Sprintf("question exceeds %d characters", maxTextLen))
	case q.Answer == "":
		return fail("answer is empty")
	case utf8.RuneCountInString(q.Answer) > maxAnswerLen:
		return fail(fmt.Sprintf("answer exceeds %d characters", maxAnswerLen))
	case blankRe.MatchString(q.Text):
		return fail("question still contains an answer blank")
	}
	return nil
}
