package problemgen

import "testing"

func TestMathCheck(t *testing.T) {
	v := &MathCheckValidator{}

	tests := []struct {
		text   string
		answer string
		ok     bool
	}{
		{"345 + 278", "623", true},
		{"345 + 278", "612", false},
		{"567 - 289 = ?", "278", true},
		{"567 - 289 = ?", "288", false},
		{"What is 23 * 45?", "1035", true},
		{"23 × 45", "1025", false},
		{"84 ÷ 6", "14", true},
		{"7 ÷ 2", "7/2", true},
		{"7 ÷ 2", "3.5", true},
		{"7 ÷ 2", "3", false},
		{"11 + 11 × 12", "143", true},
		{"11 + 11 × 12", "264", false},
		{"(11 + 11) × 12", "264", true},
		{"16²", "256", true},
		{"16²", "32", false},
		{"5^4", "625", true},
		{"3³", "27", true},
		{"1/2 + 1/3", "5/6", true},
		{"18 × 7 × 5", "630", true},
		{"-3 + 10", "7", true},
		// Prose and partial expressions pass through.
		{"The remainder of 93 ÷ 4 is ?", "999", true},
		{"40% of 45 is ?", "18", true},
		{"√144", "12", true},
		{"5 ÷ 0", "0", true},
		{"2 + + 3", "5", true},
		{"(2 + 3", "5", true},
	}

	for _, tt := range tests {
		q := &Question{Text: tt.text, Answer: tt.answer}
		err := v.Validate(q)
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%q = %q) = %v, want ok=%v", tt.text, tt.answer, err, tt.ok)
		}
	}
}

func TestComputeAnswer_NotComputable(t *testing.T) {
	for _, text := range []string{"", "?", "The GCD of 35 and 50 is ?", "2 +", "1..2 + 3"} {
		if v, err := computeAnswer(text); err == nil {
			t.Errorf("computeAnswer(%q) = %v, want error", text, v)
		}
	}
}
