package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestResults(t *testing.T) {
	assert.False(t, NotHandled.Handled)
	assert.Nil(t, NotHandled.Cmd)
	assert.True(t, HandledNoCmd.Handled)
	assert.Nil(t, HandledNoCmd.Cmd)

	cmd := func() tea.Msg { return "done" }
	r := Handled(cmd)
	assert.True(t, r.Handled)
	assert.Equal(t, "done", r.Cmd())
}

func TestChain(t *testing.T) {
	var calls []string
	record := func(name string, result Result) Handler {
		return func(key tea.KeyMsg) Result {
			calls = append(calls, name+":"+key.String())
			return result
		}
	}
	key := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}

	handled, cmd := Chain(key,
		record("first", NotHandled),
		record("second", Handled(func() tea.Msg { return "second" })),
		record("third", HandledNoCmd),
	)

	assert.True(t, handled)
	assert.Equal(t, "second", cmd())
	assert.Equal(t, []string{"first:x", "second:x"}, calls)
}

func TestChain_NoneHandled(t *testing.T) {
	handled, cmd := Chain(tea.KeyMsg{Type: tea.KeyEnter}, func(tea.KeyMsg) Result { return NotHandled })
	assert.False(t, handled)
	assert.Nil(t, cmd)

	handled, _ = Chain(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)
}
