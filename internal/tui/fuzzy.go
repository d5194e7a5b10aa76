package tui

import "strings"

// Scoring weights for FuzzyMatch.
const (
	startBonus    = 3 // first character of the target
	boundaryBonus = 2 // character after a word separator
)

// FuzzyMatch reports whether every character of query appears in target in
// order, case-insensitively, along with a relevance score. The task browser
// uses it for the `/` filter, so scoring favors the matches a person typing
// a few letters of a task title expects to surface first: consecutive runs,
// the start of the title, and word starts.
func FuzzyMatch(query, target string) (bool, int) {
	if query == "" {
		return true, 0
	}

	q := strings.ToLower(query)
	t := strings.ToLower(target)

	var score, run int
	qi := 0
	for ti := 0; ti < len(t); ti++ {
		if qi == len(q) {
			break
		}
		if t[ti] != q[qi] {
			run = 0
			continue
		}
		qi++
		run++
		score += run
		if ti == 0 {
			score += startBonus
		} else if isWordBoundary(t[ti-1]) {
			score += boundaryBonus
		}
	}

	return qi == len(q), score
}

func isWordBoundary(c byte) bool {
	switch c {
	case ' ', '/', '-', '_', '.':
		return true
	}
	return false
}
