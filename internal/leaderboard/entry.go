// Package leaderboard keeps the top scores per difficulty.
package leaderboard

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/hedgie/internal/problemgen"
)

const (
	// DefaultSize is the number of entries kept per difficulty.
	DefaultSize = 10

	// MaxNameLength is the longest stored player name, in runes.
	MaxNameLength = 20

	// AnonymousName replaces an empty player name.
	AnonymousName = "Anonymous"
)

var (
	// ErrInvalidDifficulty is returned for an unknown leaderboard key.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidEntry is returned for a submission with a missing name or
	// a negative score.
	ErrInvalidEntry = errors.New("invalid entry")
)

// Entry is one leaderboard row.
type Entry struct {
	Name       string `json:"name"`
	Score      int    `json:"score"`
	Difficulty string `json:"difficulty"`
}

// ValidKey reports whether key names a leaderboard partition: a difficulty
// tier or "grade:<tier>".
func ValidKey(key string) bool {
	if d, ok := problemgen.ParseDifficulty(key); ok {
		return d.Key() == key
	}
	if grade, ok := strings.CutPrefix(key, problemgen.GradeKeyPrefix); ok {
		g, ok := problemgen.ParseGrade(grade)
		return ok && g.Key() == key
	}
	return false
}

// Keys lists every partition: difficulty tiers first, then grades.
func Keys() []string {
	keys := make([]string, 0, len(problemgen.Difficulties)+len(problemgen.Grades))
	for _, d := range problemgen.Difficulties {
		keys = append(keys, d.Key())
	}
	for _, g := range problemgen.Grades {
		keys = append(keys, g.Key())
	}
	return keys
}

// KeyLabel is the display name for a partition, e.g. "Medium" or
// "Grade: Third".
func KeyLabel(key string) string {
	if grade, ok := strings.CutPrefix(key, problemgen.GradeKeyPrefix); ok {
		return "Grade: " + problemgen.GradeTier(grade).Label()
	}
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

// NormalizeName trims name and caps it at MaxNameLength runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return AnonymousName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name
}

// Insert adds e to list, sorts by score descending and keeps the top n.
// Ties keep their existing order, so earlier entries rank first. list is
// not modified.
func Insert(list []Entry, e Entry, n int) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Qualifies reports whether score earns a place in top. A zero score never
// does.
func Qualifies(top []Entry, score, n int) bool {
	if score <= 0 {
		return false
	}
	if len(top) < n {
		return true
	}
	lowest := top[0].Score
	for _, e := range top[1:] {
		lowest = min(lowest, e.Score)
	}
	return score > lowest
}

// validate checks and normalizes an incoming entry.
func validate(e Entry) (Entry, error) {
	if !ValidKey(e.Difficulty) {
		return Entry{}, ErrInvalidDifficulty
	}
	if e.Score < 0 {
		return Entry{}, ErrInvalidEntry
	}
	e.Name = NormalizeName(e.Name)
	return e, nil
}
