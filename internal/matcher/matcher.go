// Package matcher grades free-text answers against a card's acceptable answers,
// tolerating small typos.
package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// shortAnswerLength is the longest answer, in runes, allowed a single typo
const shortAnswerLength = 8

// Normalize prepares text for comparison: trims, lowercases and
// collapses runs of whitespace into a single space.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Distance returns the Damerau-Levenshtein distance between a and b.
// Insertions, deletions, substitutions and adjacent transpositions cost 1.
func Distance(a, b string) int {
	return edlib.DamerauLevenshteinDistance(a, b)
}

// Tolerance returns how many edits an answer may be off by.
// Answers up to 8 runes allow one edit, longer answers two.
func Tolerance(answer string) int {
	n := utf8.RuneCountInString(Normalize(answer))
	switch {
	case n == 0:
		return 0
	case n <= shortAnswerLength:
		return 1
	default:
		return 2
	}
}

// Match checks input against the acceptable answers that are not yet provided.
// Among the answers within their own tolerance it returns the one with the smallest
// distance; ties go to the earlier answer. Empty input never matches.
func Match(input string, acceptable, provided []string) (bool, string) {
	normalized := Normalize(input)
	if normalized == "" {
		return false, ""
	}

	best := -1
	bestDistance := 0
	for _, i := range available(acceptable, provided) {
		d := Distance(normalized, Normalize(acceptable[i]))
		if d > Tolerance(acceptable[i]) {
			continue
		}
		if best == -1 || d < bestDistance {
			best = i
			bestDistance = d
		}
	}

	if best == -1 {
		return false, ""
	}
	return true, acceptable[best]
}

// Remaining returns the acceptable answers that were not provided yet
func Remaining(acceptable, provided []string) []string {
	var out []string
	for _, i := range available(acceptable, provided) {
		out = append(out, acceptable[i])
	}
	return out
}

// available returns indexes of acceptable answers not consumed by provided.
// Each provided answer consumes one acceptable answer with the same normalized form.
func available(acceptable, provided []string) []int {
	consumed := make(map[string]int, len(provided))
	for _, p := range provided {
		consumed[Normalize(p)]++
	}

	var out []int
	for i, answer := range acceptable {
		key := Normalize(answer)
		if consumed[key] > 0 {
			consumed[key]--
			continue
		}
		out = append(out, i)
	}
	return out
}
