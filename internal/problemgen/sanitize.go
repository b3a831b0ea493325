package problemgen

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Item is the wire shape of one generated question.
type Item struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Type     string `json:"type"`
}

// Envelope is the wire shape of a generated batch.
type Envelope struct {
	Questions []Item `json:"questions"`
}

// ToItems renders a batch in wire shape.
func (b Batch) ToItems() []Item {
	items := make([]Item, len(b))
	for i, q := range b {
		items[i] = Item{Question: q.Text, Answer: q.Answer, Type: q.Category}
	}
	return items
}

var (
	trailingBlankRe = regexp.MustCompile(`\s*=\s*_{2,}\s*$`)
	blankRe         = regexp.MustCompile(`_{2,}`)
	fenceRe         = regexp.MustCompile("```(?:json)?\\s*")
)

// ErrNoQuestions is returned when a payload holds no usable questions.
var ErrNoQuestions = errors.New("no questions in payload")

// StripFences removes markdown code fences a model may wrap JSON in.
func StripFences(raw []byte) []byte {
	return bytes.TrimSpace(fenceRe.ReplaceAll(raw, nil))
}

// ParseItems decodes either {"questions": [...]} or a bare array, after
// stripping code fences.
func ParseItems(raw []byte) ([]Item, error) {
	cleaned := StripFences(raw)
	if len(cleaned) == 0 {
		return nil, ErrNoQuestions
	}

	if cleaned[0] == '[' {
		var items []Item
		if err := json.Unmarshal(cleaned, &items); err != nil {
			return nil, fmt.Errorf("decode question array: %w", err)
		}
		return items, nil
	}

	var env Envelope
	if err := json.Unmarshal(cleaned, &env); err != nil {
		return nil, fmt.Errorf("decode question envelope: %w", err)
	}
	return env.Questions, nil
}

// ParseBatch decodes and sanitizes a payload. A payload that yields no
// usable question is an error.
func ParseBatch(raw []byte) (Batch, error) {
	items, err := ParseItems(raw)
	if err != nil {
		return nil, err
	}
	b := Sanitize(items)
	if len(b) == 0 {
		return nil, ErrNoQuestions
	}
	return b, nil
}

// Sanitize converts wire items to questions. A trailing "= ___" is
// dropped, any other blank becomes "?", and items without text or answer
// are skipped.
func Sanitize(items []Item) Batch {
	out := make(Batch, 0, len(items))
	for _, it := range items {
		q, ok := sanitizeItem(it)
		if ok {
			out = append(out, q)
		}
	}
	return out
}

func sanitizeItem(it Item) (Question, bool) {
	text := strings.TrimSpace(it.Question)
	text = trailingBlankRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(blankRe.ReplaceAllString(text, "?"))

	answer := strings.TrimSpace(it.Answer)
	if text == "" || answer == "" {
		return Question{}, false
	}

	category := strings.TrimSpace(it.Type)
	if category == "" {
		category = "general"
	}
	return Question{Text: text, Answer: answer, Category: category}, true
}
