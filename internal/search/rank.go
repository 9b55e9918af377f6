package search

import (
	"cmp"
	"slices"

	"github.com/rivo/uniseg"
)

// Ranked is a candidate annotated with its relevance class.
type Ranked struct {
	Candidate
	Class Class
}

// Rank scores candidates against query and sorts them by class, then by
// the length of their primary text. The sort is stable.
func Rank(query string, candidates []Candidate) []Ranked {
	type entry struct {
		Ranked
		length int
	}

	entries := make([]entry, len(candidates))
	for i, c := range candidates {
		entries[i] = entry{
			Ranked: Ranked{Candidate: c, Class: BestScore(query, c.Fields()...)},
			length: uniseg.GraphemeClusterCount(c.Text()),
		}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(a.Class, b.Class); c != 0 {
			return c
		}
		return cmp.Compare(a.length, b.length)
	})

	out := make([]Ranked, len(entries))
	for i, e := range entries {
		out[i] = e.Ranked
	}
	return out
}
