// Package action defines how UI components report what the user did.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a component asks the app to do.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that emitted it.
type Msg struct {
	Source string // "searchbox", "loginform", "prompt", ...
	Action Action
}

var _ tea.Msg = Msg{}

// Cmd returns a command that emits the action from source.
func Cmd(source string, a Action) tea.Cmd {
	return func() tea.Msg {
		return Msg{Source: source, Action: a}
	}
}
