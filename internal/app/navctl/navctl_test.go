package navctl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want Route
	}{
		{"/", Route{Page: PageTab, Mode: ViewChart}},
		{"", Route{Page: PageTab, Mode: ViewChart}},
		{"/chart", Route{Page: PageTab, Mode: ViewChart}},
		{"/chart/1999", Route{Page: PageTab, Mode: ViewChart, Year: 1999}},
		{"/stats/2024/", Route{Page: PageTab, Mode: ViewStats, Year: 2024}},
		{"/artists", Route{Page: PageTab, Mode: ViewArtists}},
		{"/playlists", Route{Page: PageTab, Mode: ViewPlaylists}},
		{"/admin", Route{Page: PageTab, Mode: ViewAdmin}},
		{"/song/42", Route{Page: PageSong, ID: "42"}},
		{"/artist/a%201", Route{Page: PageArtist, ID: "a 1"}},
		{"/playlist/7", Route{Page: PagePlaylist, ID: "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Parse(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	for _, path := range []string{
		"/song", "/song/", "/artist/1/songs", "/chart/abc", "/artists/1", "/admin/songs", "/song/%zz",
	} {
		t.Run(path, func(t *testing.T) {
			_, err := Parse(path)
			assert.True(t, errors.Is(err, ErrUnknownRoute), "got %v", err)
		})
	}
}

func TestRoute_PathRoundTrip(t *testing.T) {
	for _, path := range []string{"/song/42", "/artist/a%201", "/chart/1999", "/stats", "/artists", "/admin", "/playlist/x"} {
		r, err := Parse(path)
		require.NoError(t, err)
		assert.Equal(t, path, r.Path())
	}
}

func TestManager(t *testing.T) {
	n := New()
	assert.Equal(t, ViewChart, n.ViewMode())
	assert.Equal(t, Route{Page: PageTab, Mode: ViewChart}, n.Current())
	assert.False(t, n.Back())

	song := Route{Page: PageSong, ID: "1"}
	artist := Route{Page: PageArtist, ID: "a"}
	n.Push(song)
	n.Push(song)
	n.Push(artist)
	assert.Equal(t, 2, n.Depth())
	assert.Equal(t, artist, n.Current())

	assert.True(t, n.Back())
	detail, ok := n.Detail()
	assert.True(t, ok)
	assert.Equal(t, song, detail)

	n.SetViewMode(ViewStats)
	assert.Zero(t, n.Depth())
	assert.Equal(t, 3, n.ViewMode().Index())
	assert.True(t, n.ViewMode().HasYear())
	assert.False(t, ViewArtists.HasYear())
	assert.Equal(t, -1, ViewMode("x").Index())
}
