// Package search implements incremental song and artist search: relevance
// scoring, merging of search axes, a debounced query controller and the
// mapping of ranked results to display rows.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Normalize trims surrounding whitespace and case-folds s for comparison.
func Normalize(s string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Fold().String(strings.TrimSpace(s))
}
