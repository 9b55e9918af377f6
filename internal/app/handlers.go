package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/handler"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/app/popupctl"
	"github.com/llehouerou/top2000/internal/keymap"
	"github.com/llehouerou/top2000/internal/ui/action"
	"github.com/llehouerou/top2000/internal/ui/confirm"
	"github.com/llehouerou/top2000/internal/ui/editform"
	"github.com/llehouerou/top2000/internal/ui/helpbindings"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/loginform"
	"github.com/llehouerou/top2000/internal/ui/prompt"
	"github.com/llehouerou/top2000/internal/ui/searchbox"
)

// newPlaylistPrompt tags the prompt asking for a playlist name.
type newPlaylistPrompt struct{}

// removeRequest tags the confirmation for removing a song.
type removeRequest struct {
	playlistID api.ID
	song       api.Song
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Popups.HideAll()
		return m, tea.Quit
	}
	if handled, cmd := m.Popups.HandleKey(msg); handled {
		return m, cmd
	}
	_, cmd := handler.Chain(msg, m.handleBinding, m.handleListKey)
	return m, cmd
}

// contexts returns the key binding contexts of the current page.
func (m Model) contexts() []string {
	if r, ok := m.Navigation.Detail(); ok {
		if r.Page == navctl.PagePlaylist {
			return []string{keymap.ContextSongs, keymap.ContextList}
		}
		return []string{keymap.ContextList}
	}
	switch m.Navigation.ViewMode() {
	case navctl.ViewChart:
		return []string{keymap.ContextChart, keymap.ContextList}
	case navctl.ViewStats:
		return []string{keymap.ContextChart}
	case navctl.ViewPlaylists:
		return []string{keymap.ContextPlaylist, keymap.ContextList}
	case navctl.ViewAdmin:
		return []string{keymap.ContextAdmin, keymap.ContextList}
	}
	return []string{keymap.ContextList}
}

func (m *Model) handleBinding(key tea.KeyMsg) handler.Result {
	switch m.keys.ResolveIn(key.String(), m.contexts()...) {
	case keymap.ActionQuit:
		m.Popups.HideAll()
		return handler.Handled(tea.Quit)

	case keymap.ActionViewChart:
		return handler.Handled(m.switchTab(navctl.ViewChart))
	case keymap.ActionViewArtists:
		return handler.Handled(m.switchTab(navctl.ViewArtists))
	case keymap.ActionViewPlaylists:
		return handler.Handled(m.switchTab(navctl.ViewPlaylists))
	case keymap.ActionViewStats:
		return handler.Handled(m.switchTab(navctl.ViewStats))
	case keymap.ActionViewAdmin:
		return handler.Handled(m.switchTab(navctl.ViewAdmin))

	case keymap.ActionAdminToggle:
		m.admin.setKind(1 - m.admin.kind)
		return handler.Handled(m.ensureLoaded())

	case keymap.ActionAdminFilter:
		if m.user == "" {
			return handler.HandledNoCmd
		}
		return handler.Handled(m.Popups.ShowPrompt("Filter "+m.admin.kind.String(), "name or title", adminFilterPrompt{}))

	case keymap.ActionSearch:
		m.addTo = ""
		ctrl := m.newSearchController(false)
		return handler.Handled(m.Popups.ShowSearch("Search", "song or artist", ctrl))

	case keymap.ActionHelp:
		contexts := append([]string{keymap.ContextGlobal}, m.contexts()...)
		return handler.Handled(m.Popups.ShowHelp(contexts))

	case keymap.ActionLogin:
		if m.user != "" {
			return handler.Handled(m.setStatus("Already logged in as "+m.user, false))
		}
		return handler.Handled(m.Popups.ShowLogin())

	case keymap.ActionLogout:
		return handler.Handled(m.logout())

	case keymap.ActionBack:
		if _, ok := m.Navigation.Detail(); !ok && m.Navigation.ViewMode() == navctl.ViewAdmin && m.admin.filter != "" {
			m.admin.setFilter("")
			return handler.HandledNoCmd
		}
		if !m.Navigation.Back() {
			return handler.NotHandled
		}
		if r, ok := m.Navigation.Detail(); ok {
			return handler.Handled(m.showDetail(r))
		}
		return handler.Handled(m.ensureLoaded())

	case keymap.ActionReload:
		if p, ok := m.client.(interface{ PurgeCache() }); ok {
			p.PurgeCache()
		}
		return handler.Handled(m.reload())

	case keymap.ActionPrevYear:
		return handler.Handled(m.changeYear(-1))
	case keymap.ActionNextYear:
		return handler.Handled(m.changeYear(1))

	case keymap.ActionOpen:
		return handler.Handled(m.openSelected())

	case keymap.ActionNewPlaylist:
		if m.user == "" {
			return handler.Handled(m.setStatus("Log in with L to create playlists", true))
		}
		return handler.Handled(m.Popups.ShowPrompt("New playlist", "name", newPlaylistPrompt{}))

	case keymap.ActionAddSong:
		return handler.Handled(m.startAddSong())

	case keymap.ActionRemoveSong:
		return handler.Handled(m.confirmRemoveSong())
	}
	return handler.NotHandled
}

// handleListKey moves the cursor of the list on screen.
func (m *Model) handleListKey(key tea.KeyMsg) handler.Result {
	if _, ok := m.Navigation.Detail(); ok {
		if !m.detail.hasSongs() {
			return handler.NotHandled
		}
		return listResult(m.detail.songs.Update(key))
	}

	switch m.Navigation.ViewMode() {
	case navctl.ViewChart:
		return listResult(m.chart.list.Update(key))
	case navctl.ViewArtists:
		return listResult(m.artists.list.Update(key))
	case navctl.ViewPlaylists:
		return listResult(m.playlists.list.Update(key))
	case navctl.ViewAdmin:
		return listResult(m.admin.list.Update(key))
	case navctl.ViewStats:
		return m.scrollStats(key)
	}
	return handler.NotHandled
}

func listResult(r list.Result) handler.Result {
	if r.Action == list.ActionNone {
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) scrollStats(key tea.KeyMsg) handler.Result {
	h := m.contentHeight()
	delta := 0
	switch key.String() {
	case "j", "down":
		delta = 1
	case "k", "up":
		delta = -1
	case "pgdown", "ctrl+d":
		delta = h / 2
	case "pgup", "ctrl+u":
		delta = -h / 2
	case "g", "home":
		delta = -1 << 30
	case "G", "end":
		delta = 1 << 30
	default:
		return handler.NotHandled
	}
	m.stats.scroll(delta, m.width, h)
	return handler.HandledNoCmd
}

// openSelected opens the page of the row under the cursor.
func (m *Model) openSelected() tea.Cmd {
	if r, ok := m.Navigation.Detail(); ok {
		if r.Page == navctl.PageSong {
			if m.detail.song == nil || m.detail.song.ArtistID == "" {
				return nil
			}
			return m.openDetail(navctl.Route{Page: navctl.PageArtist, ID: m.detail.song.ArtistID})
		}
		if song, ok := m.detail.songs.Selected(); ok {
			return m.openDetail(navctl.Route{Page: navctl.PageSong, ID: song.ID})
		}
		return nil
	}

	switch m.Navigation.ViewMode() {
	case navctl.ViewChart:
		if e, ok := m.chart.list.Selected(); ok {
			return m.openDetail(navctl.Route{Page: navctl.PageSong, ID: e.Song.ID})
		}
	case navctl.ViewArtists:
		if a, ok := m.artists.list.Selected(); ok {
			return m.openDetail(navctl.Route{Page: navctl.PageArtist, ID: a.ID})
		}
	case navctl.ViewPlaylists:
		if p, ok := m.playlists.list.Selected(); ok {
			return m.openDetail(navctl.Route{Page: navctl.PagePlaylist, ID: p.ID})
		}
	case navctl.ViewAdmin:
		if it, ok := m.admin.list.Selected(); ok && m.user != "" {
			return m.loadAdminItem(it)
		}
	}
	return nil
}

// startAddSong opens a songs-only search box feeding the open playlist.
func (m *Model) startAddSong() tea.Cmd {
	r, ok := m.Navigation.Detail()
	if !ok || r.Page != navctl.PagePlaylist {
		return nil
	}
	name := "playlist"
	if m.detail.playlist != nil {
		name = m.detail.playlist.Name
	}
	m.addTo = r.ID
	return m.Popups.ShowSearch("Add song to "+name, "song title", m.newSearchController(true))
}

func (m *Model) confirmRemoveSong() tea.Cmd {
	r, ok := m.Navigation.Detail()
	if !ok || r.Page != navctl.PagePlaylist {
		return nil
	}
	song, ok := m.detail.songs.Selected()
	if !ok {
		return nil
	}
	name := "the playlist"
	if m.detail.playlist != nil {
		name = m.detail.playlist.Name
	}
	return m.Popups.ShowConfirm("Remove song",
		fmt.Sprintf("Remove %q from %s?", song.Title, name),
		removeRequest{playlistID: r.ID, song: song})
}

// handleAction reacts to the result of a popup.
func (m *Model) handleAction(msg action.Msg) tea.Cmd {
	switch a := msg.Action.(type) {
	case searchbox.Selected:
		m.Popups.Hide(popupctl.Search)
		if m.addTo != "" {
			id := m.addTo
			m.addTo = ""
			return m.addSong(id, a.Item)
		}
		return m.navigate(a.Target.Path)

	case searchbox.Cancel:
		m.Popups.Hide(popupctl.Search)
		m.addTo = ""

	case loginform.Submit:
		return m.authenticate(a.Email, a.Password, a.Register)

	case loginform.Cancel:
		m.Popups.Hide(popupctl.Login)

	case prompt.Result:
		m.Popups.Hide(popupctl.Prompt)
		if a.Canceled {
			return nil
		}
		switch a.Context.(type) {
		case newPlaylistPrompt:
			return m.createPlaylist(a.Text)
		case adminFilterPrompt:
			m.admin.setFilter(a.Text)
		}

	case editform.Submit:
		if edit, ok := a.Context.(adminEdit); ok {
			return m.saveAdmin(edit.item.withValues(a.Values))
		}

	case editform.Cancel:
		m.Popups.Hide(popupctl.Edit)

	case confirm.Result:
		m.Popups.Hide(popupctl.Confirm)
		if req, ok := a.Context.(removeRequest); ok && a.Confirmed {
			return m.removeSong(req.playlistID, req.song)
		}

	case helpbindings.Close:
		m.Popups.Hide(popupctl.Help)
	}
	return nil
}
