package app

import (
	"fmt"
	"strings"

	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/keymap"
	"github.com/llehouerou/top2000/internal/ui/headerbar"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(m.Navigation.ViewMode().Index(), m.user, m.width)
	view := header + "\n" + m.renderContent(m.width, m.contentHeight()) + "\n" + m.renderStatus()
	return m.Popups.RenderOverlay(view)
}

func (m Model) renderContent(width, height int) string {
	if _, ok := m.Navigation.Detail(); ok {
		return m.detail.view(width, height)
	}
	switch m.Navigation.ViewMode() {
	case navctl.ViewArtists:
		return m.artists.view(width, height)
	case navctl.ViewPlaylists:
		return m.playlists.view(m.user != "", width, height)
	case navctl.ViewStats:
		return m.stats.view(m.year, width, height)
	case navctl.ViewAdmin:
		return m.admin.view(m.user != "", width, height)
	}
	return m.chart.view(m.year, width, height)
}

// renderStatus shows the last status message, or key hints for the page.
func (m Model) renderStatus() string {
	s := styles.T().S()
	if m.status != "" {
		style := s.Muted
		if m.statusIsError {
			style = s.Error
		}
		return style.Render(render.Truncate(m.status, m.width))
	}

	hints := []string{m.hint(keymap.ActionSearch, "search")}
	if _, ok := m.Navigation.Detail(); ok {
		hints = append(hints, m.hint(keymap.ActionBack, "back"))
	} else if m.Navigation.ViewMode().HasYear() {
		hints = append(hints, s.Key.Render("[ ]")+" year")
	}
	hints = append(hints, m.hint(keymap.ActionHelp, "help"), m.hint(keymap.ActionQuit, "quit"))
	left := strings.Join(hints, "  ")

	right := ""
	if m.Navigation.ViewMode().HasYear() {
		right = s.Muted.Render(fmt.Sprintf("%d–%d", m.opts.Chart.FirstYear, m.opts.Chart.LastYear))
	}
	return render.Row(left, right, m.width)
}

func (m Model) hint(a keymap.Action, label string) string {
	keys := m.keys.KeysFor(a)
	if len(keys) == 0 {
		return ""
	}
	return styles.T().S().Key.Render(keys[0]) + " " + label
}
