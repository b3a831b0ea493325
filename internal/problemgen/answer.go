package problemgen

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// tolerance is the absolute difference under which two numeric answers
// are treated as equal.
const tolerance = 1e-4

// IsCorrect compares the player's input against the expected answer.
//
// Both sides are trimmed, lowercased and stripped of all whitespace. Equal
// strings match. Otherwise each side is read as a number, either "a/b" or
// a plain decimal, and the two match when they differ by less than 1e-4.
// Anything unparseable, including a zero denominator, never matches.
func IsCorrect(input, expected string) bool {
	in := normalize(input)
	want := normalize(expected)
	if in == want {
		return true
	}

	u, ok := parseValue(in)
	if !ok {
		return false
	}
	e, ok := parseValue(want)
	if !ok {
		return false
	}
	return math.Abs(u-e) < tolerance
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, s)
}

// parseValue reads an already-normalized answer as a float.
func parseValue(s string) (float64, bool) {
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) != 2 {
			return 0, false
		}
		num, ok := parseFinite(parts[0])
		if !ok {
			return 0, false
		}
		den, ok := parseFinite(parts[1])
		if !ok || den == 0 {
			return 0, false
		}
		return num / den, true
	}
	return parseFinite(s)
}

func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
