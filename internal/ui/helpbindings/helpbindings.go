// Package helpbindings provides a scrollable popup for displaying keybindings.
package helpbindings

import (
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/top2000/internal/keymap"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/popup"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var categoryOrder = []string{
	keymap.ContextGlobal,
	keymap.ContextList,
	keymap.ContextChart,
	keymap.ContextPlaylist,
	keymap.ContextSongs,
	keymap.ContextAdmin,
}

var categoryLabels = map[string]string{
	keymap.ContextGlobal:   "Global",
	keymap.ContextList:     "Lists",
	keymap.ContextChart:    "Chart & Stats",
	keymap.ContextPlaylist: "Playlists",
	keymap.ContextSongs:    "Playlist Songs",
	keymap.ContextAdmin:    "Admin",
}

// Model holds the state for the help bindings popup.
type Model struct {
	ui.Base
	bindings     []keymap.Binding
	scrollOffset int
}

// New creates a help popup showing the given contexts.
func New(contexts ...string) *Model {
	m := &Model{}
	m.SetContexts(contexts)
	return m
}

// SetContexts sets which binding contexts to display.
func (m *Model) SetContexts(contexts []string) {
	m.bindings = nil
	for _, ctx := range categoryOrder {
		if slices.Contains(contexts, ctx) {
			m.bindings = append(m.bindings, keymap.ByContext(ctx)...)
		}
	}
	m.scrollOffset = 0
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "?", "esc", "q":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "j", "down":
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case "k", "up":
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	lines := m.lines()
	end := min(m.scrollOffset+m.visibleHeight(), len(lines))
	start := min(m.scrollOffset, end)

	s := styles.T().S()
	footer := "?/esc close"
	if len(lines) > m.visibleHeight() {
		footer = "j/k scroll · " + footer
	}

	return s.Title.Render("Help") + "\n\n" +
		strings.Join(lines[start:end], "\n") + "\n\n" +
		s.Subtle.Render(footer)
}

func (m *Model) lines() []string {
	s := styles.T().S()
	header := lipgloss.NewStyle().Foreground(styles.T().Secondary).Bold(true)

	keyWidth := 0
	for _, b := range m.bindings {
		keyWidth = max(keyWidth, lipgloss.Width(strings.Join(b.Keys, ", ")))
	}

	var lines []string
	current := ""
	for _, b := range m.bindings {
		if b.Context != current {
			if current != "" {
				lines = append(lines, "")
			}
			label := categoryLabels[b.Context]
			if label == "" {
				label = b.Context
			}
			lines = append(lines, header.Render(label), s.Subtle.Render(strings.Repeat("─", keyWidth+24)))
			current = b.Context
		}
		keys := render.Pad(strings.Join(b.Keys, ", "), keyWidth)
		lines = append(lines, s.Key.Render(keys)+"  "+s.Base.Render(b.Description))
	}
	return lines
}

func (m *Model) visibleHeight() int {
	// title, footer, borders
	return max(m.Height()-10, 5)
}

func (m *Model) maxScroll() int {
	return max(len(m.lines())-m.visibleHeight(), 0)
}
