// Package searchbox provides the incremental search popup: a text input
// with a live list of ranked suggestions.
package searchbox

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/top2000/internal/icons"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/popup"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

var nextID atomic.Int64

// Model is a search popup bound to a controller. The box owns the
// controller and closes it in Close.
type Model struct {
	ui.Base
	id     int
	title  string
	input  textinput.Model
	ctrl   *search.Controller
	sub    *subscription
	snap   search.Snapshot
	cursor int
}

// New creates a search box for ctrl.
func New(title, placeholder string, ctrl *search.Controller) *Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Prompt = "/ "
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	return &Model{
		id:    int(nextID.Add(1)),
		title: title,
		input: ti,
		ctrl:  ctrl,
		sub:   subscribe(ctrl),
		snap:  ctrl.Snapshot(),
	}
}

// ID identifies the box in SnapshotMsg.
func (m *Model) ID() int {
	return m.id
}

// Snapshot returns the last state received from the controller.
func (m *Model) Snapshot() search.Snapshot {
	return m.snap
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.input.Width = m.innerWidth() - 3
}

func (m *Model) innerWidth() int {
	return max(min(m.Width()-8, 70), 20)
}

// Close releases the controller and stops the subscription.
func (m *Model) Close() {
	m.sub.close()
	m.ctrl.Close()
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return m.sub.wait(m.id)
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		if msg.BoxID != m.id {
			return m, nil
		}
		m.apply(msg.Snapshot)
		return m, m.sub.wait(m.id)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) apply(snap search.Snapshot) {
	if snap.Seq < m.snap.Seq {
		return
	}
	m.snap = snap
	if m.cursor >= len(snap.Items) {
		m.cursor = max(len(snap.Items)-1, 0)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return func() tea.Msg { return ActionMsg(Cancel{}) }
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return nil
	case "down", "ctrl+n", "tab":
		if m.cursor < len(m.snap.Items)-1 {
			m.cursor++
		}
		return nil
	case "enter":
		return m.choose()
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.ctrl.SetQuery(m.input.Value())
	}
	return cmd
}

// choose selects the highlighted suggestion, or resolves the query right
// away when the current query has not settled yet.
func (m *Model) choose() tea.Cmd {
	m.apply(m.ctrl.Snapshot())
	if !m.snap.Resolved() || len(m.snap.Items) == 0 {
		ctrl, id := m.ctrl, m.id
		return func() tea.Msg {
			return SnapshotMsg{BoxID: id, Snapshot: ctrl.Submit(context.Background())}
		}
	}

	item := m.snap.Items[m.cursor]
	target, ok := m.ctrl.Select(m.cursor)
	if !ok {
		return nil
	}
	m.input.SetValue(item.Title)
	m.input.CursorEnd()
	m.cursor = 0
	return func() tea.Msg {
		return ActionMsg(Selected{Target: target, Item: item})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()
	width := m.innerWidth()

	out := s.Title.Render(m.title) + "\n\n" + m.input.View() + "\n" +
		s.Subtle.Render(render.Separator(width)) + "\n"

	for i, item := range m.snap.Items {
		out += m.row(item, i == m.cursor, width) + "\n"
	}
	if status := m.status(); status != "" {
		out += s.Muted.Render(status) + "\n"
	}

	return out + "\n" + s.Subtle.Render("↑↓ select · enter open · esc close")
}

func (m *Model) row(item search.DisplayItem, selected bool, width int) string {
	s := styles.T().S()

	marker := "  "
	if selected {
		marker = "▸ "
	}
	kind := icons.Song()
	if item.Kind == search.KindArtist {
		kind = icons.Artist()
	}

	detail := render.Truncate(item.Detail, width/3)
	left := render.Truncate(marker+kind+item.Display, width-lipgloss.Width(detail)-1)
	line := render.Row(left, s.Muted.Render(detail), width)
	if selected {
		return s.Selected.Render(line)
	}
	return line
}

func (m *Model) status() string {
	switch m.snap.State {
	case search.StatePending, search.StateResolving:
		return "Searching…"
	case search.StateSettled:
		if len(m.snap.Items) == 0 {
			return fmt.Sprintf("No results for %q", m.snap.Query)
		}
	case search.StateIdle:
		if n := m.ctrl.MinQueryLength(); n > 1 {
			return fmt.Sprintf("Type at least %d characters", n)
		}
	}
	return ""
}
