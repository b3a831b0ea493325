package problemgen

import (
	"fmt"
	"regexp"
	"strconv"
)

var fractionPattern = regexp.MustCompile(`^-?\d+/-?\d+$`)

// AnswerFormatValidator checks the answer is an integer, a decimal, or an
// "a/b" fraction with a non-zero denominator. These are the only forms
// the player can type back.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(q *Question) *ValidationError {
	var err error
	switch {
	case fractionPattern.MatchString(q.Answer):
		err = validateFraction(q.Answer)
	default:
		_, err = strconv.ParseFloat(q.Answer, 64)
		if err == nil {
			if _, ok := parseValue(normalize(q.Answer)); !ok {
				err = fmt.Errorf("not a finite number")
			}
		}
	}
	if err != nil {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unusable answer %q: %s", q.Answer, err),
			Retryable: true,
		}
	}
	return nil
}

// validateFraction checks that s is a/b with b non-zero.
func validateFraction(s string) error {
	if _, ok := parseValue(s); !ok {
		return fmt.Errorf("zero denominator")
	}
	return nil
}
