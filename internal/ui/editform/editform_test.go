package editform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/top2000/internal/ui/testutil"
)

func newHarness() (*Model, *testutil.PopupHarness) {
	m := New("Edit Queen", []Field{
		{Label: "Biography", Multiline: true},
		{Label: "Wikipedia", Value: "https://nl.wikipedia.org/wiki/Queen"},
		{Label: "Photo URL", Placeholder: "https://example.com/photo.jpg"},
	}, "ctx")
	m.SetSize(100, 40)
	return m, testutil.NewPopupHarness(m)
}

func TestEditForm_PrefillsValues(t *testing.T) {
	m, h := newHarness()
	assert.Equal(t, []string{"", "https://nl.wikipedia.org/wiki/Queen", ""}, m.Values())

	view := h.View()
	assert.Contains(t, view, "Edit Queen")
	assert.Contains(t, view, "Biography")
	assert.Contains(t, view, "Photo URL")
}

func TestEditForm_MultilineKeepsNewlines(t *testing.T) {
	m, h := newHarness()
	h.TypeText("British")
	h.SendKey("enter")
	h.TypeText("rock band")

	assert.Equal(t, 0, m.Focused(), "enter stays in a multiline field")
	assert.Equal(t, "British\nrock band", m.Values()[0])
}

func TestEditForm_TabCyclesFields(t *testing.T) {
	m, h := newHarness()
	h.SendKey("tab")
	assert.Equal(t, 1, m.Focused())
	h.SendKey("tab")
	h.SendKey("tab")
	assert.Equal(t, 0, m.Focused())
	h.SendKey("shift+tab")
	assert.Equal(t, 2, m.Focused())

	h.TypeText("/q.png")
	assert.Equal(t, "/q.png", m.Values()[2])
}

func TestEditForm_SaveWithCtrlS(t *testing.T) {
	m, h := newHarness()
	h.TypeText("Band")
	h.SendKey("ctrl+s")

	act, ok := h.LastAction()
	require.True(t, ok)
	assert.Equal(t, Submit{Values: []string{"Band", "https://nl.wikipedia.org/wiki/Queen", ""}, Context: "ctx"}, act)
	assert.True(t, m.Busy())
	assert.Contains(t, h.View(), "Saving…")
}

func TestEditForm_EnterOnLastFieldSaves(t *testing.T) {
	_, h := newHarness()
	h.SendKey("shift+tab")
	h.SendKey("enter")

	act, ok := h.LastAction()
	require.True(t, ok)
	assert.IsType(t, Submit{}, act)
}

func TestEditForm_BusyUntilError(t *testing.T) {
	m, h := newHarness()
	h.SendKey("ctrl+s")
	h.ClearCommands()

	h.TypeText("ignored")
	assert.Empty(t, m.Values()[0])
	assert.Nil(t, h.SendKey("ctrl+s"), "no second save while busy")

	m.SetError("Failed to save changes: boom")
	assert.False(t, m.Busy())
	assert.Contains(t, h.View(), "Failed to save changes: boom")
}

func TestEditForm_Cancel(t *testing.T) {
	_, h := newHarness()
	h.SendKey("esc")

	act, ok := h.LastAction()
	require.True(t, ok)
	assert.Equal(t, Cancel{Context: "ctx"}, act)
}
