package app

import (
	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/errmsg"
	"github.com/llehouerou/top2000/internal/session"
)

// ChartLoadedMsg carries the chart of one year.
type ChartLoadedMsg struct {
	Year    int
	Entries []api.ChartEntry
	Err     error
}

// ArtistsLoadedMsg carries the artist list.
type ArtistsLoadedMsg struct {
	Artists []api.Artist
	Err     error
}

// StatsLoadedMsg carries the statistics of one year.
type StatsLoadedMsg struct {
	Year  int
	Stats *api.Stats
	Err   error
}

// PlaylistsLoadedMsg carries the user's playlists.
type PlaylistsLoadedMsg struct {
	Playlists []api.Playlist
	Err       error
}

// DetailLoadedMsg carries the data of a detail page.
type DetailLoadedMsg struct {
	Route    navctl.Route
	Song     *api.Song
	Artist   *api.Artist
	Playlist *api.Playlist
	Songs    []api.Song // artist songs or playlist songs
	Err      error
}

// PlaylistChangedMsg reports the outcome of a playlist mutation.
type PlaylistChangedMsg struct {
	Op         errmsg.Op
	PlaylistID api.ID
	Label      string // song or playlist name for the status line
	Err        error
}

// AdminListLoadedMsg carries the editable records of one kind.
type AdminListLoadedMsg struct {
	Kind  adminKind
	Items []adminItem
	Err   error
}

// AdminItemLoadedMsg carries the full record behind an admin row.
type AdminItemLoadedMsg struct {
	Item adminItem
	Err  error
}

// AdminSavedMsg reports the outcome of saving an edited record.
type AdminSavedMsg struct {
	Item adminItem
	Err  error
}

// AuthDoneMsg reports the outcome of a login or registration.
type AuthDoneMsg struct {
	Register bool
	Session  session.Session
	Err      error
}

// StatusClearMsg clears the status line if no newer message replaced it.
type StatusClearMsg struct {
	Version int
}
