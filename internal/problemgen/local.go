package problemgen

import (
	"fmt"
	"math/rand/v2"
	"strconv"
)

// Operation is an arithmetic template kind.
type Operation string

const (
	OpAdd Operation = "addition"
	OpSub Operation = "subtraction"
	OpMul Operation = "multiplication"
	OpDiv Operation = "division"
)

// Template pairs an operation with its largest operand.
type Template struct {
	Op  Operation
	Max int
}

var gradeTemplates = map[GradeTier][]Template{
	Kindergarten: {{OpAdd, 10}, {OpSub, 10}},
	First:        {{OpAdd, 20}, {OpSub, 20}},
	Second:       {{OpAdd, 100}, {OpSub, 100}, {OpMul, 5}},
	Third:        {{OpAdd, 1000}, {OpSub, 1000}, {OpMul, 10}},
	Fourth:       {{OpAdd, 10000}, {OpSub, 10000}, {OpMul, 12}, {OpDiv, 12}},
	Fifth:        {{OpAdd, 100000}, {OpSub, 100000}, {OpMul, 20}, {OpDiv, 20}},
}

// Templates returns the template set for a grade. Unknown grades get the
// kindergarten set.
func Templates(g GradeTier) []Template {
	if ts, ok := gradeTemplates[g]; ok {
		return ts
	}
	return gradeTemplates[Kindergarten]
}

// LocalGenerator builds arithmetic questions from the grade templates.
// It never fails and performs no I/O. Not safe for concurrent use; the
// random source is owned by the generator.
type LocalGenerator struct {
	rng *rand.Rand
}

// NewLocalGenerator returns a generator drawing from rng. A nil rng is
// seeded randomly.
func NewLocalGenerator(rng *rand.Rand) *LocalGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &LocalGenerator{rng: rng}
}

// Generate returns one question for the grade.
func (g *LocalGenerator) Generate(tier GradeTier) Question {
	ts := Templates(tier)
	return g.FromTemplate(ts[g.rng.IntN(len(ts))])
}

// GenerateBatch returns n questions for the grade.
func (g *LocalGenerator) GenerateBatch(tier GradeTier, n int) Batch {
	b := make(Batch, 0, n)
	for range n {
		b = append(b, g.Generate(tier))
	}
	return b
}

// FromTemplate renders a question for a single template.
func (g *LocalGenerator) FromTemplate(t Template) Question {
	pick := func(max int) int { return 1 + g.rng.IntN(max) }

	var text string
	var answer int
	switch t.Op {
	case OpSub:
		a := pick(t.Max)
		b := pick(a)
		text, answer = fmt.Sprintf("%d - %d", a, b), a-b
	case OpMul:
		a, b := pick(t.Max), pick(t.Max)
		text, answer = fmt.Sprintf("%d × %d", a, b), a*b
	case OpDiv:
		divisor, quotient := pick(t.Max), pick(t.Max)
		text, answer = fmt.Sprintf("%d ÷ %d", divisor*quotient, divisor), quotient
	default:
		a, b := pick(t.Max), pick(t.Max)
		text, answer = fmt.Sprintf("%d + %d", a, b), a+b
	}

	return Question{Text: text, Answer: strconv.Itoa(answer), Category: string(t.Op)}
}
