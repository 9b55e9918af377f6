package search

// Merge appends secondary after primary, dropping any candidate whose key
// already appeared. First occurrence order is kept.
func Merge(primary, secondary []Candidate) []Candidate {
	seen := make(map[Key]struct{}, len(primary)+len(secondary))
	out := make([]Candidate, 0, len(primary)+len(secondary))

	for _, list := range [][]Candidate{primary, secondary} {
		for _, c := range list {
			k := c.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}
