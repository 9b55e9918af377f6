package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := Default()

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{"/", ActionSearch},
		{"f3", ActionViewPlaylists},
		{"?", ActionHelp},
		{"[", ""},
		{"x", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.key))
		})
	}
}

func TestResolver_ResolveIn(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionQuit, []string{"q"}, "Quit", ContextGlobal},
		{ActionBack, []string{"d"}, "Back", ContextGlobal},
		{ActionRemoveSong, []string{"d"}, "Remove", ContextSongs},
		{ActionPrevYear, []string{"["}, "Prev", ContextChart},
	})

	assert.Equal(t, ActionRemoveSong, r.ResolveIn("d", ContextSongs), "context wins over global")
	assert.Equal(t, ActionBack, r.ResolveIn("d", ContextChart))
	assert.Equal(t, ActionQuit, r.ResolveIn("q", ContextSongs), "falls back to global")
	assert.Equal(t, ActionPrevYear, r.ResolveIn("[", ContextSongs, ContextChart))
	assert.Equal(t, Action(""), r.ResolveIn("[", ContextSongs))
	assert.Equal(t, ActionBack, r.ResolveIn("d"))
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionOpen, []string{"enter"}, "Open", ContextList},
		{ActionOpen, []string{"enter", "l"}, "Open", ContextPlaylist},
	})

	assert.Equal(t, []string{"enter", "l"}, r.KeysFor(ActionOpen))
	assert.Nil(t, r.KeysFor(ActionQuit))
}
