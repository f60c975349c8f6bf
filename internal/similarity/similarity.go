// Package similarity provides the edit-distance utilities that back every
// fuzzy comparison in the import validation engine. All functions are pure
// and deterministic.
package similarity

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each comparison.
var foldCaser = cases.Fold()

// MaxCandidates caps how many candidates BestMatch examines. Distance is
// O(len(a)*len(b)) per candidate, so unbounded reference lists would make
// worst-case batch latency quadratic in both directions.
const MaxCandidates = 1000

// Fold normalizes a string for case-insensitive comparison using Unicode
// case folding.
func Fold(s string) string { return foldCaser.String(s) }

// Distance returns the Levenshtein edit distance between a and b, where
// insertion, deletion, and substitution each cost 1. The computation is
// rune-correct for multi-byte UTF-8 input.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Confidence returns a similarity score in [0, 1] defined as
// (maxLen - distance) / maxLen over rune lengths, where identical strings
// score 1.0 and two empty strings are considered identical.
func Confidence(a, b string) float64 {
	if a == b {
		return 1.0
	}

	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	score := float64(maxLen-Distance(a, b)) / float64(maxLen)

	// Guard against floating-point drift at the range edges.
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// Match pairs a candidate with its confidence against some input.
type Match struct {
	Candidate  string
	Confidence float64
}

// BestMatch returns the candidate most similar to input along with its
// confidence. Comparison is case-folded; the returned candidate keeps its
// original casing. At most MaxCandidates candidates are examined. The
// second return is false when no candidates were provided.
func BestMatch(input string, candidates []string) (Match, bool) {
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	folded := Fold(input)
	best := Match{Confidence: -1}
	for _, c := range candidates {
		if score := Confidence(folded, Fold(c)); score > best.Confidence {
			best = Match{Candidate: c, Confidence: score}
		}
	}

	return best, best.Confidence >= 0
}

// TopMatches returns up to n candidates ranked by descending confidence
// against input, preserving candidate order on ties. Comparison is
// case-folded.
func TopMatches(input string, candidates []string, n int) []Match {
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	folded := Fold(input)
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		matches = append(matches, Match{Candidate: c, Confidence: Confidence(folded, Fold(c))})
	}

	// Insertion sort keeps ties stable; candidate lists are small.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].Confidence > matches[j-1].Confidence; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	if n < len(matches) {
		matches = matches[:n]
	}
	return matches
}
