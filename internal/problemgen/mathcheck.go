package problemgen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MathCheckValidator recomputes the answer when the question text is a
// bare arithmetic expression such as "11 + 11 × 12" or "16²". Word
// problems and anything else it cannot read pass through silently.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(q *Question) *ValidationError {
	computed, err := computeAnswer(q.Text)
	if err != nil {
		return nil
	}
	if !IsCorrect(q.Answer, formatNumber(computed)) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("computed %s but generator claimed %q", formatNumber(computed), q.Answer),
			Retryable: true,
		}
	}
	return nil
}

var (
	errNotComputable = errors.New("not computable")

	// exprOnlyRe admits digits, whitespace, operators, parentheses and
	// superscript powers. Anything else is prose.
	exprOnlyRe = regexp.MustCompile(`^[\d\s.+\-*/×÷x()²³^]+$`)
	questionRe = regexp.MustCompile(`\s*=?\s*\?\s*$`)
)

// computeAnswer evaluates text if it is a pure arithmetic expression.
func computeAnswer(text string) (float64, error) {
	expr := strings.TrimSpace(questionRe.ReplaceAllString(text, ""))
	expr = strings.TrimPrefix(expr, "What is ")
	if expr == "" || !exprOnlyRe.MatchString(expr) {
		return 0, errNotComputable
	}

	p := &exprParser{toks: tokenize(expr)}
	if p.toks == nil {
		return 0, errNotComputable
	}
	v, err := p.parseSum()
	if err != nil || p.pos != len(p.toks) {
		return 0, errNotComputable
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errNotComputable
	}
	return v, nil
}

// tokenize splits an expression into numbers and single-rune operators.
// Returns nil on any unexpected rune.
func tokenize(expr string) []string {
	var toks []string
	runes := []rune(expr)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == ' ' || r == '\t':
			i++
		case (r >= '0' && r <= '9') || r == '.':
			j := i
			for j < len(runes) && ((runes[j] >= '0' && runes[j] <= '9') || runes[j] == '.') {
				j++
			}
			toks = append(toks, string(runes[i:j]))
			i = j
		case strings.ContainsRune("+-*/×÷x()²³^", r):
			toks = append(toks, normalizeOp(string(r)))
			i++
		default:
			return nil
		}
	}
	return toks
}

// normalizeOp folds the display operators onto ASCII.
func normalizeOp(op string) string {
	switch op {
	case "×", "x":
		return "*"
	case "÷":
		return "/"
	default:
		return op
	}
}

// exprParser is a recursive-descent evaluator with the usual precedence:
// sums, then products, then powers, then unary minus and parentheses.
type exprParser struct {
	toks []string
	pos  int
}

func (p *exprParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *exprParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for op := p.peek(); op == "+" || op == "-"; op = p.peek() {
		p.pos++
		rhs, err := p.parseProduct()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (p *exprParser) parseProduct() (float64, error) {
	v, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	for op := p.peek(); op == "*" || op == "/"; op = p.peek() {
		p.pos++
		rhs, err := p.parsePower()
		if err != nil {
			return 0, err
		}
		if op == "*" {
			v *= rhs
		} else {
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			v /= rhs
		}
	}
	return v, nil
}

func (p *exprParser) parsePower() (float64, error) {
	v, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case "²":
			p.pos++
			v *= v
		case "³":
			p.pos++
			v = v * v * v
		case "^":
			p.pos++
			exp, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			v = math.Pow(v, exp)
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	switch tok := p.peek(); {
	case tok == "-":
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	case tok == "(":
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ")" {
			return 0, errors.New("unbalanced parentheses")
		}
		p.pos++
		return v, nil
	case tok != "" && (tok[0] >= '0' && tok[0] <= '9' || tok[0] == '.'):
		p.pos++
		return strconv.ParseFloat(tok, 64)
	default:
		return 0, fmt.Errorf("unexpected token %q", tok)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
