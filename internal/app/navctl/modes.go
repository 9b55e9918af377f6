// Package navctl provides navigation state: the active tab and the stack
// of detail pages opened from it.
package navctl

// ViewMode is one of the top-level tabs.
type ViewMode string

const (
	ViewChart     ViewMode = "chart"
	ViewArtists   ViewMode = "artists"
	ViewPlaylists ViewMode = "playlists"
	ViewStats     ViewMode = "stats"
	ViewAdmin     ViewMode = "admin"
)

// Modes lists the tabs in header order.
var Modes = []ViewMode{ViewChart, ViewArtists, ViewPlaylists, ViewStats, ViewAdmin}

// Index returns the position of v in Modes, or -1.
func (v ViewMode) Index() int {
	for i, m := range Modes {
		if m == v {
			return i
		}
	}
	return -1
}

// HasYear reports whether the view is scoped to a chart year.
func (v ViewMode) HasYear() bool {
	return v == ViewChart || v == ViewStats
}
