package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/app/popupctl"
	"github.com/llehouerou/top2000/internal/errmsg"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/action"
	"github.com/llehouerou/top2000/internal/ui/headerbar"
	"github.com/llehouerou/top2000/internal/ui/layout"
	"github.com/llehouerou/top2000/internal/ui/searchbox"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.Popups.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case navigateMsg:
		return m, m.navigate(msg.path)

	case searchbox.SnapshotMsg:
		return m, m.Popups.Update(popupctl.Search, msg)

	case action.Msg:
		return m, m.handleAction(msg)

	case ChartLoadedMsg:
		return m, m.handleChartLoaded(msg)

	case ArtistsLoadedMsg:
		m.artists.loading = false
		if msg.Err != nil {
			m.artists.err = m.loadError(errmsg.OpArtistsLoad, msg.Err)
			return m, nil
		}
		m.artists.setArtists(msg.Artists)
		return m, nil

	case StatsLoadedMsg:
		if msg.Year != m.year {
			return m, nil
		}
		m.stats.loading = false
		if msg.Err != nil {
			m.stats.err = m.loadError(errmsg.OpStatsLoad, msg.Err)
			return m, nil
		}
		m.stats.setStats(msg.Year, msg.Stats)
		return m, nil

	case PlaylistsLoadedMsg:
		if m.user == "" {
			return m, nil
		}
		m.playlists.loading = false
		if msg.Err != nil {
			m.playlists.err = m.loadError(errmsg.OpPlaylistsLoad, msg.Err)
			return m, nil
		}
		m.playlists.setPlaylists(msg.Playlists)
		return m, nil

	case DetailLoadedMsg:
		return m, m.handleDetailLoaded(msg)

	case PlaylistChangedMsg:
		return m, m.handlePlaylistChanged(msg)

	case AdminListLoadedMsg:
		if m.user == "" {
			return m, nil
		}
		if msg.Err != nil {
			m.admin.loading[msg.Kind] = false
			err := m.loadError(errmsg.OpAdminLoad, msg.Err)
			if msg.Kind == m.admin.kind {
				m.admin.err = err
			}
			return m, nil
		}
		m.admin.setItems(msg.Kind, msg.Items)
		return m, nil

	case AdminItemLoadedMsg:
		if m.user == "" {
			return m, nil
		}
		if msg.Err != nil {
			m.showError(errmsg.OpAdminLoad, msg.Err)
			return m, nil
		}
		return m, m.Popups.ShowEdit("Edit "+msg.Item.name(), msg.Item.fields(), adminEdit{item: msg.Item})

	case AdminSavedMsg:
		return m, m.handleAdminSaved(msg)

	case AuthDoneMsg:
		return m, m.handleAuthDone(msg)

	case StatusClearMsg:
		if msg.Version == m.statusVersion {
			m.status = ""
		}
		return m, nil
	}
	return m, nil
}

// layout sizes the views to the space between header and status line.
func (m *Model) layout() {
	w, h := m.width, m.contentHeight()
	m.chart.list.SetSize(w, h)
	m.artists.list.SetSize(w, h)
	m.playlists.list.SetSize(w, h)
	m.admin.list.SetSize(w, h)
	m.detail.resize(w, h)
}

func (m Model) contentHeight() int {
	return layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight: headerbar.Height,
		StatusHeight: ui.StatusHeight,
	})
}

// navigate opens path: a tab (optionally with a year) or a detail page.
func (m *Model) navigate(path string) tea.Cmd {
	r, err := navctl.Parse(path)
	if err != nil {
		m.logger.Warn("navigation failed", "path", path, "error", err)
		return m.setStatus("Unknown page "+path, true)
	}
	if r.Page != navctl.PageTab {
		return m.openDetail(r)
	}
	if r.Year != 0 {
		m.year = m.clampYear(r.Year)
	}
	return m.switchTab(r.Mode)
}

func (m *Model) switchTab(mode navctl.ViewMode) tea.Cmd {
	m.Navigation.SetViewMode(mode)
	return m.ensureLoaded()
}

// ensureLoaded starts loading the active tab when its data is missing.
func (m *Model) ensureLoaded() tea.Cmd {
	switch m.Navigation.ViewMode() {
	case navctl.ViewChart:
		if m.chart.year == m.year && m.chart.err == "" {
			return nil
		}
		m.chart.loading = true
		m.chart.err = ""
		return m.loadChart(m.year)

	case navctl.ViewArtists:
		if m.artists.loaded || m.artists.loading {
			return nil
		}
		m.artists.loading = true
		m.artists.err = ""
		return m.loadArtists()

	case navctl.ViewPlaylists:
		if m.user == "" || m.playlists.loaded || m.playlists.loading {
			return nil
		}
		m.playlists.loading = true
		m.playlists.err = ""
		return m.loadPlaylists()

	case navctl.ViewStats:
		if m.stats.year == m.year && m.stats.stats != nil {
			return nil
		}
		m.stats.loading = true
		m.stats.err = ""
		return m.loadStats(m.year)

	case navctl.ViewAdmin:
		kind := m.admin.kind
		if m.user == "" || m.admin.loaded[kind] || m.admin.loading[kind] {
			return nil
		}
		m.admin.loading[kind] = true
		m.admin.err = ""
		return m.loadAdmin(kind)
	}
	return nil
}

// reload drops the data of the active page and fetches it again.
func (m *Model) reload() tea.Cmd {
	if r, ok := m.Navigation.Detail(); ok {
		return m.showDetail(r)
	}
	switch m.Navigation.ViewMode() {
	case navctl.ViewChart:
		m.chart.year = 0
	case navctl.ViewArtists:
		m.artists.loaded = false
	case navctl.ViewPlaylists:
		m.playlists.loaded = false
	case navctl.ViewStats:
		m.stats.stats = nil
	case navctl.ViewAdmin:
		m.admin.loaded[m.admin.kind] = false
	}
	return m.ensureLoaded()
}

func (m *Model) openDetail(r navctl.Route) tea.Cmd {
	if r.Page == navctl.PagePlaylist && m.user == "" {
		return m.setStatus("Log in with L to open playlists", true)
	}
	m.Navigation.Push(r)
	return m.showDetail(r)
}

func (m *Model) showDetail(r navctl.Route) tea.Cmd {
	m.detail.open(r)
	m.layout()
	return m.loadDetail(r)
}

func (m *Model) changeYear(delta int) tea.Cmd {
	year := m.clampYear(m.year + delta)
	if year == m.year {
		return nil
	}
	m.year = year
	return m.ensureLoaded()
}

func (m Model) clampYear(year int) int {
	return min(max(year, m.opts.Chart.FirstYear), m.opts.Chart.LastYear)
}

func (m *Model) handleChartLoaded(msg ChartLoadedMsg) tea.Cmd {
	if msg.Year != m.year {
		return nil
	}
	m.chart.loading = false
	if msg.Err != nil {
		m.chart.err = m.loadError(errmsg.OpChartLoad, msg.Err)
		return nil
	}
	m.chart.setEntries(msg.Year, msg.Entries)
	return nil
}

func (m *Model) handleDetailLoaded(msg DetailLoadedMsg) tea.Cmd {
	if cur, ok := m.Navigation.Detail(); !ok || cur != msg.Route {
		return nil
	}
	m.detail.loading = false
	if msg.Err != nil {
		op := map[navctl.Page]errmsg.Op{
			navctl.PageSong:     errmsg.OpSongLoad,
			navctl.PageArtist:   errmsg.OpArtistLoad,
			navctl.PagePlaylist: errmsg.OpPlaylistLoad,
		}[msg.Route.Page]
		m.detail.err = m.loadError(op, msg.Err)
		return nil
	}
	m.detail.apply(msg)
	m.layout()
	return nil
}

func (m *Model) handlePlaylistChanged(msg PlaylistChangedMsg) tea.Cmd {
	if msg.Err != nil {
		m.showError(msg.Op, msg.Err)
		return nil
	}

	m.playlists.loaded = false
	var text string
	switch msg.Op {
	case errmsg.OpPlaylistCreate:
		text = "Created playlist " + msg.Label
	case errmsg.OpPlaylistAdd:
		text = "Added " + msg.Label
	case errmsg.OpPlaylistRemove:
		text = "Removed " + msg.Label
	}

	cmds := []tea.Cmd{m.setStatus(text, false)}
	if cur, ok := m.Navigation.Detail(); ok && cur.Page == navctl.PagePlaylist && cur.ID == msg.PlaylistID {
		cmds = append(cmds, m.loadDetail(cur))
	} else if !ok {
		cmds = append(cmds, m.ensureLoaded())
	}
	return tea.Batch(cmds...)
}

// handleAdminSaved closes the form on success and keeps it open with the
// error otherwise.
func (m *Model) handleAdminSaved(msg AdminSavedMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("admin save failed", "kind", msg.Item.Kind, "id", msg.Item.id(), "error", msg.Err)
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			m.signedOut()
		}
		if form, ok := m.Popups.EditForm(); ok {
			form.SetError(errmsg.Format(errmsg.OpAdminSave, msg.Err))
			return nil
		}
		m.Popups.ShowError(errmsg.Format(errmsg.OpAdminSave, msg.Err))
		return nil
	}
	m.Popups.Hide(popupctl.Edit)
	m.admin.replace(msg.Item)
	return m.setStatus("Saved "+msg.Item.name(), false)
}

func (m *Model) handleAuthDone(msg AuthDoneMsg) tea.Cmd {
	form, open := m.Popups.LoginForm()
	if msg.Err != nil {
		op := errmsg.OpLogin
		if msg.Register {
			op = errmsg.OpRegister
		}
		m.logger.Info("authentication failed", "register", msg.Register, "error", msg.Err)
		if open {
			form.SetError(errmsg.Format(op, msg.Err))
		}
		return nil
	}

	m.Popups.Hide(popupctl.Login)
	m.user = msg.Session.Email
	if m.user == "" {
		m.user = "logged in"
	}
	m.playlists.reset()
	m.admin.reset()
	return tea.Batch(m.setStatus("Logged in as "+m.user, false), m.ensureLoaded())
}

func (m *Model) logout() tea.Cmd {
	if m.user == "" {
		return m.setStatus("Not logged in", false)
	}
	if err := m.client.Logout(); err != nil {
		m.showError(errmsg.OpLogout, err)
		return nil
	}
	m.signedOut()
	return m.setStatus("Logged out", false)
}

// signedOut forgets the account and leaves pages that require it.
func (m *Model) signedOut() {
	m.user = ""
	m.playlists.reset()
	m.admin.reset()
	m.Popups.Hide(popupctl.Edit)
	if r, ok := m.Navigation.Detail(); ok && r.Page == navctl.PagePlaylist {
		m.Navigation.SetViewMode(m.Navigation.ViewMode())
	}
}

// loadError formats a load failure for display in the view. An expired
// session logs the user out.
func (m *Model) loadError(op errmsg.Op, err error) string {
	m.logger.Warn("load failed", "op", op, "error", err)
	if errors.Is(err, api.ErrUnauthorized) {
		m.signedOut()
	}
	return errmsg.Format(op, err)
}

// showError reports a failed user action in a popup.
func (m *Model) showError(op errmsg.Op, err error) {
	m.Popups.ShowError(m.loadError(op, err))
}

// setStatus shows text in the status line for a few seconds.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.status = text
	m.statusIsError = isError
	m.statusVersion++
	return clearStatusAfter(m.statusVersion)
}
