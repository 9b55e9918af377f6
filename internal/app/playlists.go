package app

import (
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/icons"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

type playlistsView struct {
	list    list.Model[api.Playlist]
	loaded  bool
	loading bool
	err     string
}

func newPlaylistsView() playlistsView {
	return playlistsView{list: list.New[api.Playlist](ui.PanelOverhead)}
}

func (v *playlistsView) setPlaylists(playlists []api.Playlist) {
	v.loaded = true
	v.loading = false
	v.err = ""
	v.list.SetItems(playlists)
}

// reset forgets the playlists of the previous account.
func (v *playlistsView) reset() {
	v.loaded = false
	v.loading = false
	v.err = ""
	v.list.SetItems(nil)
}

func (v playlistsView) view(loggedIn bool, width, height int) string {
	if !loggedIn {
		return renderPanel("Playlists", styles.T().S().Muted.Render("Log in with L to see your playlists"), width, height)
	}

	body := placeholder(v.loading, v.err, "No playlists yet. Press n to create one")
	if !v.loading && v.err == "" && v.list.Len() > 0 {
		body = renderRows(v.list, width-ui.BorderHeight, playlistRow)
	}
	return renderPanel("Playlists", body, width, height)
}

func playlistRow(p api.Playlist, width int) string {
	count := ""
	if len(p.Songs) > 0 {
		count = humanize.Comma(int64(len(p.Songs))) + " songs"
	}
	return render.Row(render.Truncate(icons.FormatPlaylist(p.Name), width-12), styles.T().S().Muted.Render(count), width)
}
