// Package headerbar renders the title and view tabs at the top of the screen.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/top2000/internal/icons"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is one switchable view.
type Tab struct {
	Key  string
	Name string
}

// Tabs lists the views in display order.
var Tabs = []Tab{
	{"F1", "Chart"},
	{"F2", "Artists"},
	{"F3", "Playlists"},
	{"F4", "Stats"},
	{"F5", "Admin"},
}

// Render returns the header line. active is an index into Tabs, user the
// logged in account ("" when logged out).
func Render(active int, user string, width int) string {
	if width < 20 {
		return ""
	}
	t := styles.T()
	s := t.S()

	activeStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	separator := s.Subtle.Render(" │ ")

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == active {
			parts = append(parts, activeStyle.Render(tab.Key+" "+tab.Name))
			continue
		}
		parts = append(parts, s.Key.Render(tab.Key)+" "+s.Muted.Render(tab.Name))
	}

	left := styles.AppTitle() + "  " + strings.Join(parts, separator)

	account := s.Subtle.Render("not logged in")
	if user != "" {
		account = s.Muted.Render(icons.FormatAccount(user))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(account)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + account
}
