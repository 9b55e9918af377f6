// Package editform provides a popup for editing a few labelled text
// fields. Multiline fields use a text area.
package editform

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/popup"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

var _ popup.Popup = (*Model)(nil)

// areaHeight is the number of lines shown by a multiline field.
const areaHeight = 4

// Field describes one input of the form.
type Field struct {
	Label       string
	Value       string
	Placeholder string
	Multiline   bool
}

type field struct {
	label     string
	multiline bool
	input     textinput.Model
	area      textarea.Model
}

func (f *field) value() string {
	if f.multiline {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) focus() {
	if f.multiline {
		f.area.Focus()
		return
	}
	f.input.Focus()
}

func (f *field) blur() {
	if f.multiline {
		f.area.Blur()
		return
	}
	f.input.Blur()
}

// Model is the edit form.
type Model struct {
	ui.Base
	title   string
	fields  []field
	focus   int
	context any
	err     string
	busy    bool
}

// New creates a form with the first field focused.
func New(title string, fields []Field, context any) *Model {
	m := &Model{title: title, context: context}
	for _, f := range fields {
		ff := field{label: f.Label, multiline: f.Multiline}
		if f.Multiline {
			ta := textarea.New()
			ta.Placeholder = f.Placeholder
			ta.ShowLineNumbers = false
			ta.CharLimit = 0
			ta.SetHeight(areaHeight)
			ta.SetValue(f.Value)
			ff.area = ta
		} else {
			ti := textinput.New()
			ti.Placeholder = f.Placeholder
			ti.Prompt = "> "
			ti.CharLimit = 500
			ti.Cursor.SetMode(cursor.CursorStatic)
			ti.SetValue(f.Value)
			ff.input = ti
		}
		m.fields = append(m.fields, ff)
	}
	if len(m.fields) > 0 {
		m.fields[0].focus()
	}
	return m
}

// SetSize implements popup.Popup.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	w := max(min(width-12, 70), 20)
	for i := range m.fields {
		if m.fields[i].multiline {
			m.fields[i].area.SetWidth(w)
		} else {
			m.fields[i].input.Width = w - 3
		}
	}
}

// Values returns the current text of every field.
func (m *Model) Values() []string {
	values := make([]string, len(m.fields))
	for i := range m.fields {
		values[i] = m.fields[i].value()
	}
	return values
}

// Focused returns the index of the focused field.
func (m *Model) Focused() int {
	return m.focus
}

// SetError shows a message under the fields and re-enables the form.
func (m *Model) SetError(msg string) {
	m.err = msg
	m.busy = false
}

// Busy reports whether a save is in progress.
func (m *Model) Busy() bool {
	return m.busy
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.fields) == 0 {
		return m, nil
	}

	switch key.String() {
	case "esc":
		ctx := m.context
		return m, func() tea.Msg { return ActionMsg(Cancel{Context: ctx}) }
	case "tab":
		m.setFocus((m.focus + 1) % len(m.fields))
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + len(m.fields) - 1) % len(m.fields))
		return m, nil
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		if !m.fields[m.focus].multiline {
			if m.focus == len(m.fields)-1 {
				return m, m.submit()
			}
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	if m.busy {
		return m, nil
	}
	f := &m.fields[m.focus]
	var cmd tea.Cmd
	if f.multiline {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(i int) {
	m.fields[m.focus].blur()
	m.focus = i
	m.fields[m.focus].focus()
}

func (m *Model) submit() tea.Cmd {
	if m.busy {
		return nil
	}
	m.err = ""
	m.busy = true
	submit := Submit{Values: m.Values(), Context: m.context}
	return func() tea.Msg { return ActionMsg(submit) }
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	s := styles.T().S()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n")
	for i := range m.fields {
		f := &m.fields[i]
		label := s.Muted.Render(f.label)
		if i == m.focus {
			label = s.Key.Render(f.label)
		}
		b.WriteString("\n")
		b.WriteString(label)
		b.WriteString("\n")
		if f.multiline {
			b.WriteString(f.area.View())
		} else {
			b.WriteString(f.input.View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString(s.Muted.Render("Saving…"))
		b.WriteString("\n\n")
	case m.err != "":
		b.WriteString(s.Error.Render(m.err))
		b.WriteString("\n\n")
	}
	b.WriteString(s.Subtle.Render("tab: next field · ctrl+s: save · esc: cancel"))
	return b.String()
}
