package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/hedgie/internal/llm"
)

func batchJSON(items ...Item) json.RawMessage {
	raw, _ := json.Marshal(Envelope{Questions: items})
	return raw
}

func newTestGenerator(mock *llm.MockProvider) *LLMGenerator {
	log, _ := test.NewNullLogger()
	return New(mock, DefaultConfig(), log)
}

func TestGenerate_ValidBatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(
			Item{Question: "33 + 43 = ___", Answer: "76", Type: "addition"},
			Item{Question: "16² = ___", Answer: "256", Type: "squares"},
			Item{Question: "The remainder of 93 ÷ 4 is ___", Answer: "1", Type: "remainder"},
		),
	})
	gen := newTestGenerator(mock)

	b, err := gen.Generate(context.Background(), 3, Hard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 3 {
		t.Fatalf("got %d questions, want 3", len(b))
	}
	if b[0].Text != "33 + 43" || b[2].Text != "The remainder of 93 ÷ 4 is ?" {
		t.Errorf("unexpected text: %q, %q", b[0].Text, b[2].Text)
	}
	if b[1].Category != "squares" {
		t.Errorf("category = %q", b[1].Category)
	}
}

func TestGenerate_RequestShape(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(Item{Question: "1 + 1", Answer: "2", Type: "addition"}),
	})
	gen := newTestGenerator(mock)

	if _, err := gen.Generate(context.Background(), 12, Easy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Calls()[0]
	if req.Purpose != llm.PurposeQuestionGen {
		t.Errorf("purpose = %q", req.Purpose)
	}
	if req.Schema != BatchSchema {
		t.Error("expected the batch schema")
	}
	if req.MaxTokens != 2000 || req.Temperature != 1.0 {
		t.Errorf("sampling = %d/%v", req.MaxTokens, req.Temperature)
	}
	if !strings.Contains(req.System, "EASY DIFFICULTY GUIDELINES") {
		t.Error("system prompt missing easy guidelines")
	}
	if !strings.Contains(req.System, "Generate exactly 12 questions") {
		t.Error("system prompt missing count")
	}
	if !strings.Contains(req.Prompt, "at EASY difficulty") {
		t.Errorf("user prompt = %q", req.Prompt)
	}
}

func TestGenerate_DropsInvalidItems(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(
			Item{Question: "12 × 12 = ___", Answer: "144", Type: "multiplication"},
			Item{Question: "12 × 12 = ___", Answer: "144", Type: "multiplication"}, // duplicate
			Item{Question: "7 + 8 = ___", Answer: "16", Type: "addition"},           // wrong
			Item{Question: "XIV in digits is ___", Answer: "fourteen", Type: "roman_numerals"},
			Item{Question: "", Answer: "3", Type: "addition"},
			Item{Question: "3/4 + 1/4 = ___", Answer: "1", Type: "fractions"},
		),
	})
	gen := newTestGenerator(mock)

	b, err := gen.Generate(context.Background(), 10, Medium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var texts []string
	for _, q := range b {
		texts = append(texts, q.Text)
	}
	if got := strings.Join(texts, "|"); got != "12 × 12|3/4 + 1/4" {
		t.Errorf("kept = %q", got)
	}
}

func TestGenerate_AllInvalidIsError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: batchJSON(Item{Question: "2 + 2", Answer: "5", Type: "addition"}),
	})
	gen := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), 5, Medium)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.Error{Kind: llm.Unavailable, Provider: "openai", Err: errors.New("down")},
	})
	gen := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), 5, Medium)
	if kind, ok := llm.KindOf(err); !ok || kind != llm.Unavailable {
		t.Fatalf("expected an unavailable provider error, got %v", err)
	}
}

func TestGenerate_CannedBatchPassesValidation(t *testing.T) {
	gen := newTestGenerator(llm.NewCannedProvider())

	b, err := gen.Generate(context.Background(), 20, Medium)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) != 10 {
		t.Fatalf("got %d questions, want all 10 canned ones", len(b))
	}
	if b[0].Text != "48 + 27" || b[0].Answer != "75" {
		t.Errorf("first question = %+v", b[0])
	}
}

func TestGenerate_MalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`not json`)})
	gen := newTestGenerator(mock)

	if _, err := gen.Generate(context.Background(), 5, Medium); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestGenerate_ClampsCount(t *testing.T) {
	items := make([]Item, 0, 60)
	for i := 1; i <= 60; i++ {
		items = append(items, Item{Question: strings.Repeat("1", i) + " + 0", Answer: strings.Repeat("1", i), Type: "addition"})
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: batchJSON(items...)})
	gen := newTestGenerator(mock)

	b, err := gen.Generate(context.Background(), 500, Hard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b) > 50 {
		t.Errorf("got %d questions, want at most 50", len(b))
	}
	if !strings.Contains(mock.Calls()[0].System, "Generate exactly 50 questions") {
		t.Error("expected count clamped to 50 in prompt")
	}
}

func TestBuildSystemPrompt_UnknownTierUsesMedium(t *testing.T) {
	p := buildSystemPrompt(Difficulty("insane"), 10)
	if !strings.Contains(p, "MEDIUM DIFFICULTY GUIDELINES") {
		t.Error("expected medium guidelines for unknown tier")
	}
	for _, d := range Difficulties {
		if !strings.Contains(buildSystemPrompt(d, 10), strings.ToUpper(string(d))+" DIFFICULTY GUIDELINES") {
			t.Errorf("%s guidelines missing", d)
		}
	}
}
