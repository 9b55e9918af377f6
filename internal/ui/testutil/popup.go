package testutil

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/ui/action"
	"github.com/llehouerou/top2000/internal/ui/popup"
)

// PopupHarness drives a popup in tests and records the commands it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness initializes p and captures its init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	if cmd := p.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Popup returns the wrapped popup.
func (h *PopupHarness) Popup() popup.Popup {
	return h.popup
}

// View returns the popup content with escape sequences removed.
func (h *PopupHarness) View() string {
	return StripANSI(h.popup.View())
}

// SendMsg delivers msg and returns the resulting command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// SendKey delivers a key in the form accepted by Key.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(Key(key))
}

// TypeText delivers text one rune at a time.
func (h *PopupHarness) TypeText(text string) {
	for _, msg := range Type(text) {
		h.SendMsg(msg)
	}
}

// LastCommand returns the most recent non-nil command.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands forgets the recorded commands.
func (h *PopupHarness) ClearCommands() {
	h.cmds = nil
}

// LastAction runs the most recent command and returns the action it
// emitted, if any.
func (h *PopupHarness) LastAction() (action.Action, bool) {
	msg, ok := ExecuteCmd(h.LastCommand()).(action.Msg)
	if !ok {
		return nil, false
	}
	return msg.Action, true
}

// ExecuteCmd runs cmd and returns its message. Batches are flattened and
// the first action.Msg found is returned, otherwise the first message.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return msg
	}
	var first tea.Msg
	for _, c := range batch {
		m := ExecuteCmd(c)
		if _, isAction := m.(action.Msg); isAction {
			return m
		}
		if first == nil {
			first = m
		}
	}
	return first
}
