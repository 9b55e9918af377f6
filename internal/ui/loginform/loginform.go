// Package loginform provides the email and password popup used to log in
// or register.
package loginform

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/popup"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

const (
	fieldEmail = iota
	fieldPassword
)

// Model is the login form.
type Model struct {
	ui.Base
	inputs   [2]textinput.Model
	focus    int
	register bool
	err      string
	busy     bool
}

// New creates an empty form with the email field focused.
func New() *Model {
	m := &Model{}
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 254
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	m.inputs[fieldEmail].Prompt = "Email:    "
	m.inputs[fieldEmail].Placeholder = "you@example.com"
	m.inputs[fieldPassword].Prompt = "Password: "
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'
	m.inputs[fieldEmail].Focus()
	return m
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	for i := range m.inputs {
		m.inputs[i].Width = max(min(width-20, 40), 10)
	}
}

// Registering reports whether the form creates an account.
func (m *Model) Registering() bool {
	return m.register
}

// SetError shows a message under the fields and re-enables the form.
func (m *Model) SetError(msg string) {
	m.err = msg
	m.busy = false
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc":
		return m, func() tea.Msg { return ActionMsg(Cancel{}) }
	case "tab", "shift+tab", "up", "down":
		m.setFocus(1 - m.focus)
		return m, nil
	case "ctrl+r":
		m.register = !m.register
		m.err = ""
		return m, nil
	case "enter":
		if m.focus == fieldEmail {
			m.setFocus(fieldPassword)
			return m, nil
		}
		return m, m.submit()
	}

	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *Model) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	email := strings.TrimSpace(m.inputs[fieldEmail].Value())
	password := m.inputs[fieldPassword].Value()
	if email == "" || password == "" {
		m.err = "Email and password are required"
		return nil
	}

	m.err = ""
	m.busy = true
	submit := Submit{Email: email, Password: password, Register: m.register}
	return func() tea.Msg { return ActionMsg(submit) }
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	title, toggle := "Log in", "ctrl+r: create an account"
	if m.register {
		title, toggle = "Register", "ctrl+r: log in instead"
	}

	var b strings.Builder
	b.WriteString(s.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.inputs[fieldEmail].View())
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldPassword].View())
	b.WriteString("\n\n")
	switch {
	case m.busy:
		b.WriteString(s.Muted.Render("Please wait…"))
		b.WriteString("\n\n")
	case m.err != "":
		b.WriteString(s.Error.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(s.Subtle.Render("tab: switch field · enter: submit · " + toggle + " · esc: cancel"))
	return b.String()
}
