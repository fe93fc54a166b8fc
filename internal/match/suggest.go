package match

import (
	"fmt"
	"strings"
)

// DefaultThreshold is the minimum similarity for a candidate to be suggested.
const DefaultThreshold = 0.6

// Closest returns the candidate most similar to name after normalization.
// Ties go to the earlier candidate. ok is false when no candidate scores at
// least threshold.
func Closest(name string, candidates []string, threshold float64) (best string, ok bool) {
	bestScore := -1.0

	for _, c := range candidates {
		score := similarity(fold(name), fold(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < threshold {
		return "", false
	}

	return best, true
}

// Hint formats a "did you mean" suffix for a diagnostic message, or returns
// the empty string when nothing is close enough.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates, DefaultThreshold)
	if !ok || best == name {
		return ""
	}

	return fmt.Sprintf("; did you mean %q?", best)
}

// fold lower-cases s and drops '_', '-' and spaces, so "NoDisplay",
// "no_display" and "no-display" compare equal.
func fold(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '_', '-', ' ':
			return -1
		}

		return r
	}, strings.ToLower(s))
}

// similarity is 1 minus the edit distance over the longer length.
func similarity(a, b string) float64 {
	n := max(len([]rune(a)), len([]rune(b)))
	if n == 0 {
		return 1
	}

	return 1 - float64(distance(a, b))/float64(n)
}

// distance is the Levenshtein distance between a and b, counted in runes.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	// row[j] holds the distance between the prefix of ra seen so far and rb[:j].
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i

		for j := 1; j <= len(rb); j++ {
			sub := diag
			if ra[i-1] != rb[j-1] {
				sub++
			}

			diag = row[j]
			row[j] = min(row[j]+1, row[j-1]+1, sub)
		}
	}

	return row[len(rb)]
}
