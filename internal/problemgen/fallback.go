package problemgen

// fallbackItems is the hand-written practice set used when no generator
// is reachable. It is general practice, not tied to a difficulty tier.
var fallbackItems = []Item{
	{Question: "33 + 43 = ___", Answer: "76", Type: "addition"},
	{Question: "276 + 532 = ___", Answer: "808", Type: "addition"},
	{Question: "732 - 485 = ___", Answer: "247", Type: "subtraction"},
	{Question: "The remainder of 93 ÷ 4 is ___", Answer: "1", Type: "remainder"},
	{Question: "11 + 11 × 12 = ___", Answer: "143", Type: "order_of_operations"},
	{Question: "84 ÷ 6 = ___", Answer: "14", Type: "division"},
	{Question: "16 + 23 + 34 + 47 = ___", Answer: "120", Type: "addition"},
	{Question: "The product of 17 and 7 is ___", Answer: "119", Type: "multiplication"},
	{Question: "54 × 11 = ___", Answer: "594", Type: "multiplication"},
	{Question: "16² = ___", Answer: "256", Type: "squares"},
	{Question: "18 × 7 × 5 = ___", Answer: "630", Type: "multiplication"},
	{Question: "62 × 15 = ___", Answer: "930", Type: "multiplication"},
	{Question: "24 × 16 = ___", Answer: "384", Type: "multiplication"},
	{Question: "28² = ___", Answer: "784", Type: "squares"},
	{Question: "27 + 23 + 19 + 15 + 11 = ___", Answer: "95", Type: "addition"},
	{Question: "The GCD of 35 and 50 is ___", Answer: "5", Type: "gcd_lcm"},
	{Question: "40% of 45 is ___", Answer: "18", Type: "percentages"},
	{Question: "7200 seconds is ___ minutes", Answer: "120", Type: "unit_conversion"},
	{Question: "The LCM of 35 and 50 is ___", Answer: "350", Type: "gcd_lcm"},
	{Question: "72 × 78 = ___", Answer: "5616", Type: "multiplication"},
}

// Fallback returns a fresh copy of the static practice set, sanitized for
// display.
func Fallback() Batch {
	return Sanitize(fallbackItems)
}
