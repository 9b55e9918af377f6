package keymap

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// All contains every key binding, in help display order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionViewChart, []string{"f1"}, "Chart view", ContextGlobal},
	{ActionViewArtists, []string{"f2"}, "Artists view", ContextGlobal},
	{ActionViewPlaylists, []string{"f3"}, "Playlists view", ContextGlobal},
	{ActionViewStats, []string{"f4"}, "Stats view", ContextGlobal},
	{ActionViewAdmin, []string{"f5"}, "Admin view", ContextGlobal},
	{ActionSearch, []string{"/"}, "Search songs and artists", ContextGlobal},
	{ActionLogin, []string{"L"}, "Log in or register", ContextGlobal},
	{ActionLogout, []string{"O"}, "Log out", ContextGlobal},
	{ActionReload, []string{"ctrl+r"}, "Reload view", ContextGlobal},
	{ActionBack, []string{"esc", "backspace"}, "Close detail view", ContextGlobal},
	{ActionHelp, []string{"?"}, "Show help", ContextGlobal},

	{ActionPrevYear, []string{"["}, "Previous year", ContextChart},
	{ActionNextYear, []string{"]"}, "Next year", ContextChart},

	{ActionOpen, []string{"enter"}, "Open", ContextList},

	{ActionNewPlaylist, []string{"n"}, "New playlist", ContextPlaylist},

	{ActionAddSong, []string{"a"}, "Add song", ContextSongs},
	{ActionRemoveSong, []string{"d", "delete"}, "Remove song", ContextSongs},

	{ActionAdminToggle, []string{"t"}, "Switch between artists and songs", ContextAdmin},
	{ActionAdminFilter, []string{"f"}, "Filter by name", ContextAdmin},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
