package problemgen

import "strings"

// Question is a single prompt shown to the player. It is immutable once
// created and consumed exactly once by a session.
type Question struct {
	// Text is the expression or prompt, e.g. "48 + 27" or
	// "The remainder of 93 ÷ 4 is ?". It never carries an answer blank.
	Text string

	// Answer is the expected answer, kept textual so "3/4" stays a
	// fraction and never round-trips through a float.
	Answer string

	// Category is a free-form tag such as "addition" or "gcd_lcm".
	Category string
}

// Batch is an ordered run of questions. Presentation order is
// generation order.
type Batch []Question

// Difficulty selects generation parameters for the generated-question mode.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists every tier in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty reports whether s names a known tier.
func ParseDifficulty(s string) (Difficulty, bool) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Easy, Medium, Hard:
		return d, true
	}
	return "", false
}

// DifficultyOrDefault parses s, falling back to Medium.
func DifficultyOrDefault(s string) Difficulty {
	if d, ok := ParseDifficulty(s); ok {
		return d
	}
	return Medium
}

// Key is the leaderboard partition for this tier.
func (d Difficulty) Key() string { return string(d) }

// GradeTier selects the template set for the local generator.
type GradeTier string

const (
	Kindergarten GradeTier = "kindergarten"
	First        GradeTier = "first"
	Second       GradeTier = "second"
	Third        GradeTier = "third"
	Fourth       GradeTier = "fourth"
	Fifth        GradeTier = "fifth"
)

// Grades lists every grade tier in ascending order.
var Grades = []GradeTier{Kindergarten, First, Second, Third, Fourth, Fifth}

// ParseGrade reports whether s names a known grade tier.
func ParseGrade(s string) (GradeTier, bool) {
	g := GradeTier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := gradeTemplates[g]; ok {
		return g, true
	}
	return "", false
}

// GradeKeyPrefix prefixes grade-mode leaderboard partitions.
const GradeKeyPrefix = "grade:"

// Key is the leaderboard partition for this grade, e.g. "grade:third".
func (g GradeTier) Key() string { return GradeKeyPrefix + string(g) }

// Label is the display name, e.g. "Kindergarten".
func (g GradeTier) Label() string {
	if g == "" {
		return ""
	}
	return strings.ToUpper(string(g[:1])) + string(g[1:])
}
