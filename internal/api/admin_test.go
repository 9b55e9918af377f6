package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/top2000/internal/session"
)

func adminClient(t *testing.T, handler http.Handler) (*Client, session.Store) {
	t.Helper()
	store := session.NewMemory()
	require.NoError(t, store.Save(session.Session{AccessToken: "admin-tok", Email: "root@example.com"}))
	return newTestClient(t, handler, Options{Sessions: store}), store
}

func TestAdminArtists(t *testing.T) {
	c, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/artists", r.URL.Path)
		assert.Equal(t, "Bearer admin-tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"artistId": 4, "name": "Queen", "wiki": "https://nl.wikipedia.org/wiki/Queen"}]`))
	}))

	artists, err := c.AdminArtists(context.Background())
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, ID("4"), artists[0].ID)
	assert.Equal(t, "https://nl.wikipedia.org/wiki/Queen", artists[0].Wiki)
}

func TestAdminSong_DecodesEditableFields(t *testing.T) {
	c, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/songs/12", r.URL.Path)
		_, _ = w.Write([]byte(`{"songId": 12, "titel": "Bohemian Rhapsody", "lyrics": "Is this the real life?",
			"imgUrl": "/br.jpg", "youtube": "https://www.youtube.com/watch?v=fJ9rUzIMcZQ"}`))
	}))

	song, err := c.AdminSong(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, SongEdit{
		Lyrics:   "Is this the real life?",
		ImageURL: "/br.jpg",
		YouTube:  "https://www.youtube.com/watch?v=fJ9rUzIMcZQ",
	}, song.Edit())
}

func TestUpdateArtist_SendsEditableFields(t *testing.T) {
	var got map[string]string
	c, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/admin/artists/4", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.UpdateArtist(context.Background(), "4", ArtistEdit{Biography: "British rock band", Photo: "/q.png"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"biography": "British rock band", "wiki": "", "photo": "/q.png"}, got)
}

func TestUpdateSong_SendsEditableFields(t *testing.T) {
	var got map[string]string
	c, _ := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/songs/s1", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))

	require.NoError(t, c.UpdateSong(context.Background(), "s1", SongEdit{YouTube: "https://youtu.be/x"}))
	assert.Equal(t, map[string]string{"lyrics": "", "imgUrl": "", "youtube": "https://youtu.be/x"}, got)
}

func TestAdmin_NotAnAdministratorKeepsSession(t *testing.T) {
	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			c, store := adminClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
			}))

			_, err := c.AdminSongs(context.Background())
			require.ErrorIs(t, err, ErrForbidden)

			s, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, "admin-tok", s.AccessToken)
		})
	}
}

func TestAdmin_RequiresSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without a session")
	}), Options{})

	err := c.UpdateSong(context.Background(), "1", SongEdit{})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestWithEdit(t *testing.T) {
	a := Artist{ID: "4", Name: "Queen", Genre: "Rock"}.WithEdit(ArtistEdit{Biography: "bio", Wiki: "w", Photo: "p"})
	assert.Equal(t, Artist{ID: "4", Name: "Queen", Genre: "Rock", Biography: "bio", Wiki: "w", Photo: "p"}, a)

	s := Song{ID: "1", Title: "One", ImageURL: "old"}.WithEdit(SongEdit{Lyrics: "l", YouTube: "y"})
	assert.Equal(t, Song{ID: "1", Title: "One", Lyrics: "l", YouTube: "y"}, s)
}
