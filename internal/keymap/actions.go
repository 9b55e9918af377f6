// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit   Action = "quit"
	ActionSearch Action = "search"
	ActionHelp   Action = "help"
	ActionLogin  Action = "login"
	ActionLogout Action = "logout"
	ActionBack   Action = "back"
	ActionReload Action = "reload"

	// View switching
	ActionViewChart     Action = "view_chart"
	ActionViewArtists   Action = "view_artists"
	ActionViewPlaylists Action = "view_playlists"
	ActionViewStats     Action = "view_stats"
	ActionViewAdmin     Action = "view_admin"

	// Chart and stats
	ActionPrevYear Action = "prev_year"
	ActionNextYear Action = "next_year"

	// Lists
	ActionOpen Action = "open"

	// Playlists
	ActionNewPlaylist Action = "new_playlist"
	ActionAddSong     Action = "add_song"
	ActionRemoveSong  Action = "remove_song"

	// Admin
	ActionAdminToggle Action = "admin_toggle"
	ActionAdminFilter Action = "admin_filter"
)

// Contexts group bindings for resolution and help.
const (
	ContextGlobal   = "global"
	ContextChart    = "chart"
	ContextList     = "list"
	ContextPlaylist = "playlist"
	ContextSongs    = "playlist-songs"
	ContextAdmin    = "admin"
)
