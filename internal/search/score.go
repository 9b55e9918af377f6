package search

import "strings"

// Class is a relevance bucket. Lower is better.
type Class int

const (
	ClassExact Class = iota
	ClassPrefix
	ClassSubstring
	ClassNone
)

func (c Class) String() string {
	switch c {
	case ClassExact:
		return "exact"
	case ClassPrefix:
		return "prefix"
	case ClassSubstring:
		return "substring"
	default:
		return "none"
	}
}

// Score classifies how text matches query.
func Score(text, query string) Class {
	text = Normalize(text)
	query = Normalize(query)

	switch {
	case text == query:
		return ClassExact
	case strings.HasPrefix(text, query):
		return ClassPrefix
	case strings.Contains(text, query):
		return ClassSubstring
	default:
		return ClassNone
	}
}

// BestScore returns the best class of query across fields.
// Empty fields are ignored.
func BestScore(query string, fields ...string) Class {
	best := ClassNone
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			continue
		}
		if c := Score(f, query); c < best {
			best = c
			if best == ClassExact {
				break
			}
		}
	}
	return best
}
