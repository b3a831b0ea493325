package problemgen

import (
	"fmt"
	"strings"
)

var difficultyGuidelines = map[Difficulty]string{
	Easy: `EASY DIFFICULTY GUIDELINES:
- Use single-digit and simple two-digit numbers only
- Basic operations: addition/subtraction up to 100, simple multiplication (times tables up to 10)
- Simple division with no remainders
- Squares of numbers 1-10 only
- Simple percentages: 10%, 25%, 50%, 100%
- No fractions, no complex operations
- Example: "7 × 8 = ___", "45 + 32 = ___", "50% of 20 = ___"`,

	Medium: `MEDIUM DIFFICULTY GUIDELINES:
- Two and three-digit numbers
- Multiplication of 2-digit × 1-digit, some 2-digit × 2-digit
- Division with remainders
- Squares up to 20, square roots of perfect squares up to 400
- Percentages including 15%, 20%, 30%, 40%, etc.
- Simple fractions addition/subtraction
- GCD/LCM with smaller numbers
- Order of operations with 2-3 operations
- Example: "16² = ___", "The remainder of 93 ÷ 4 is ___", "40% of 45 = ___"`,

	Hard: `HARD DIFFICULTY GUIDELINES:
- Large numbers, 3-digit × 2-digit multiplication
- Complex multi-step calculations
- Squares up to 30, cubes, fourth powers
- Square roots of larger perfect squares
- Complex percentage problems
- Fraction operations including multiplication/division
- GCD/LCM with larger numbers
- Sequences requiring pattern recognition
- Roman numerals with larger values
- Multiple order of operations
- Example: "28² = ___", "√1764 = ___", "72 × 78 = ___", "5⁴ = ___"`,
}

const systemPromptTemplate = `You are a math competition question generator for Number Sense style problems. Generate questions that test mental math skills.

Question types to include (vary the types based on difficulty):
1. Basic arithmetic: addition, subtraction, multiplication, division
2. Powers and squares (e.g., "16² = ___", "5⁴ = ___")
3. Square roots (e.g., "√144 = ___")
4. Fractions: addition, subtraction, comparing fractions
5. Percentages (e.g., "40%% of 45 is ___")
6. GCD and LCM problems
7. Remainders (e.g., "The remainder of 93 ÷ 4 is ___")
8. Roman numerals conversion
9. Unit conversions (e.g., "120 seconds is ___ minutes")
10. Digit problems (e.g., "The tens digit of 438 is ___")
11. Perimeter and area of basic shapes
12. Arithmetic sequences
13. Prime factorization related questions
14. Order of operations (e.g., "11 + 11 × 12 = ___")

IMPORTANT RULES:
- All answers must be integers or simple fractions
- For fraction answers, express as "a/b" format
- Questions should be solvable with mental math (no calculator)
- STRICTLY follow the difficulty guidelines provided
- Keep numbers appropriate for the specified difficulty level
- VARIETY IS CRITICAL: Each batch must include at least 8 different question types from the list above
- Use different numbers and operations in each question - avoid patterns like "X × 11" appearing multiple times
- Vary the format: some word problems, some symbolic (e.g., "16² = ___" vs "The square of 16 is ___")
- Do NOT repeat similar question structures within the same batch

%s

Generate exactly %d questions. Return a JSON object with a "questions" array whose items contain:
- "question": the question text (use "___" for the blank)
- "answer": the numerical answer (as a string, fractions as "a/b")
- "type": the question type category, e.g. addition, squares, remainder, gcd_lcm, order_of_operations`

// buildSystemPrompt fills the template for a tier and count. Unknown
// tiers use the medium guidelines.
func buildSystemPrompt(d Difficulty, count int) string {
	guide, ok := difficultyGuidelines[d]
	if !ok {
		guide = difficultyGuidelines[Medium]
	}
	return fmt.Sprintf(systemPromptTemplate, guide, count)
}

// buildUserMessage asks for count varied questions at the tier.
func buildUserMessage(d Difficulty, count int) string {
	return fmt.Sprintf("Generate %d HIGHLY VARIED Number Sense style math questions at %s difficulty level. "+
		"IMPORTANT: Ensure maximum variety - use at least 8 different question types, different number ranges, "+
		"and different phrasings. Avoid any repetitive patterns. Each question should feel unique.",
		count, strings.ToUpper(string(d)))
}
