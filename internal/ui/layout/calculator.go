// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the row width below which song rows drop the artist
// column.
const NarrowThreshold = 60

// minTitleWidth keeps titles readable on very small terminals.
const minTitleWidth = 10

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight int
	StatusHeight int
}

// ContentHeight calculates the available height for the page between the
// header and the status line. It is never negative.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	return max(windowHeight-opts.HeaderHeight-opts.StatusHeight, 0)
}

// IsNarrowMode returns true if the row width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// SongColumns splits the width left for a song row, after fixed columns
// such as position or year, into title and artist widths. The title gets
// three fifths; narrow rows give it everything.
func SongColumns(width, fixed int) (title, artist int) {
	rest := max(width-fixed, minTitleWidth)
	if IsNarrowMode(width) {
		return rest, 0
	}
	title = rest * 3 / 5
	return title, rest - title
}
