package mapping

import (
	"sort"
	"strings"
)

// SuggestType finds the canonical type name closest to an unknown one, for
// "did you mean" diagnostics. Returns "" when nothing is within 2 edits.
func SuggestType(unknown string) string {
	unknown = strings.ToUpper(unknown)

	// Sorted candidates keep the suggestion deterministic on ties.
	candidates := make([]string, 0, len(TypeTable))
	for name := range TypeTable {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	var bestMatch string
	bestDistance := 999
	maxDistance := 2

	for _, name := range candidates {
		dist := levenshtein(unknown, name)
		if dist < bestDistance && dist <= maxDistance {
			bestDistance = dist
			bestMatch = name
		}
	}

	return bestMatch
}

// levenshtein calculates edit distance between two strings
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}
