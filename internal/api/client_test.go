package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/llehouerou/top2000/internal/session"
)

func newTestClient(t *testing.T, handler http.Handler, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	c := NewClient(opts)
	c.retryDelay = time.Millisecond
	return c
}

func TestSearchSongs_DecodesAliases(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`[
			{"songId": 12, "titel": "Bohemian Rhapsody", "artistName": "Queen", "imgUrl": "/q.jpg", "releaseYear": 1975},
			{"id": "s2", "title": "Hotel California", "artist": "Eagles", "year": 1976}
		]`))
	}), Options{})

	songs, err := c.SearchSongs(context.Background(), "  bohemian rhap ")
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "/api/Song/search/bohemian%20rhap", gotPath)

	assert.Equal(t, Song{
		ID:          "12",
		Title:       "Bohemian Rhapsody",
		Artist:      "Queen",
		ImageURL:    "/q.jpg",
		ReleaseYear: 1975,
	}, songs[0])
	assert.Equal(t, ID("s2"), songs[1].ID)
	assert.Equal(t, "Hotel California", songs[1].Title)
	assert.Equal(t, "Eagles", songs[1].Artist)
	assert.Equal(t, 1976, songs[1].ReleaseYear)
}

func TestSearchArtists_DecodesAliases(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Artist/search/queen", r.URL.Path)
		_, _ = w.Write([]byte(`[{"artistId": 7, "name": "Queen", "genre": "Rock", "biography": "British band", "photo": "/queen.png"}]`))
	}), Options{})

	artists, err := c.SearchArtists(context.Background(), "queen")
	require.NoError(t, err)
	require.Len(t, artists, 1)
	assert.Equal(t, Artist{ID: "7", Name: "Queen", Genre: "Rock", Biography: "British band", Photo: "/queen.png"}, artists[0])
}

func TestSearch_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"songId": 1, "titel": "One"}]`))
	}), Options{CacheSize: 8, CacheTTL: time.Minute})

	ctx := context.Background()
	_, err := c.SearchSongs(ctx, "One")
	require.NoError(t, err)
	_, err = c.SearchSongs(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load(), "second lookup should be served from cache")

	c.PurgeCache()
	_, err = c.SearchSongs(ctx, "one")
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_NoCacheByDefault(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[]`))
	}), Options{})

	for range 3 {
		_, err := c.SearchArtists(context.Background(), "abba")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestArtistSongs_CachedResultIsCopied(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`[{"songId": 1, "titel": "Radio Ga Ga"}]`))
	}), Options{CacheSize: 8, CacheTTL: time.Minute})

	ctx := context.Background()
	songs, err := c.ArtistSongs(ctx, "a1")
	require.NoError(t, err)
	songs[0].Artist = "Queen"

	songs, err = c.ArtistSongs(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Empty(t, songs[0].Artist, "cached entry must not see caller edits")
}

func TestNewClient_WithoutCacheStartsNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := NewClient(Options{BaseURL: "http://localhost"})
	c.PurgeCache()
}

func TestDo_StatusErrorUsesMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "No chart for 1990"}`))
	}), Options{})

	_, err := c.ChartByYear(context.Background(), 1990)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "No chart for 1990", statusErr.Message)
}

func TestDo_MalformedJSON(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}), Options{})

	_, err := c.SearchSongs(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[{"artistId": 1, "name": "Abba"}]`))
	}), Options{Retries: 2})

	artists, err := c.Artists(context.Background())
	require.NoError(t, err)
	assert.Len(t, artists, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}), Options{Retries: 1})

	_, err := c.Artists(context.Background())

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}), Options{Retries: 3})

	_, err := c.SearchSongs(context.Background(), "x")
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_ContextCanceled(t *testing.T) {
	block := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}), Options{Retries: 3})
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.SearchSongs(ctx, "slow")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPlaylists_RequiresSession(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("no request expected without a session")
	}), Options{})

	_, err := c.Playlists(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestPlaylists_SendsBearerToken(t *testing.T) {
	store := session.NewMemory()
	require.NoError(t, store.Save(session.Session{AccessToken: "tok-123"}))

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"playlistId": 3, "name": "Favourites"}]`))
	}), Options{Sessions: store})

	playlists, err := c.Playlists(context.Background())
	require.NoError(t, err)
	require.Len(t, playlists, 1)
	assert.Equal(t, ID("3"), playlists[0].ID)
	assert.Equal(t, "Favourites", playlists[0].Name)
}

func TestPlaylists_UnauthorizedClearsSession(t *testing.T) {
	store := session.NewMemory()
	require.NoError(t, store.Save(session.Session{AccessToken: "stale"}))

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), Options{Sessions: store})

	_, err := c.Playlists(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = store.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
	assert.False(t, c.IsAuthenticated())
}

func TestPlaylistMutations(t *testing.T) {
	store := session.NewMemory()
	require.NoError(t, store.Save(session.Session{AccessToken: "tok"}))

	var mu sync.Mutex
	var seen []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()

		entry := r.Method + " " + r.URL.Path
		if r.Body != nil {
			var body map[string]string
			if json.NewDecoder(r.Body).Decode(&body) == nil {
				for k, v := range body {
					entry += " " + k + "=" + v
				}
			}
		}
		seen = append(seen, entry)

		if r.Method == http.MethodPost && r.URL.Path == "/api/Playlist" {
			_, _ = w.Write([]byte(`{"playlistId": 9, "name": "Road trip"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}), Options{Sessions: store})

	ctx := context.Background()
	created, err := c.CreatePlaylist(ctx, "Road trip")
	require.NoError(t, err)
	assert.Equal(t, ID("9"), created.ID)

	require.NoError(t, c.AddSong(ctx, created.ID, "42"))
	require.NoError(t, c.RemoveSong(ctx, created.ID, "42"))

	assert.Equal(t, []string{
		"POST /api/Playlist name=Road trip",
		"POST /api/Playlist/9/songs songId=42",
		"DELETE /api/Playlist/9/songs/42",
	}, seen)
}

func TestLogin_StoresSession(t *testing.T) {
	store := session.NewMemory()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var creds credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "fan@example.com", creds.Email)
		assert.Equal(t, "secret", creds.Password)
		_, _ = w.Write([]byte(`{"token": "abc", "refreshToken": "def", "expiresAt": "2099-01-01T00:00:00Z"}`))
	}), Options{Sessions: store})

	sess, err := c.Login(context.Background(), "fan@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc", sess.AccessToken)
	assert.Equal(t, 2099, sess.ExpiresAt.Year())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, sess, stored)
	assert.True(t, c.IsAuthenticated())

	require.NoError(t, c.Logout())
	assert.False(t, c.IsAuthenticated())
}

func TestLogin_RejectedCredentials(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "Invalid credentials"}`))
	}), Options{})

	_, err := c.Login(context.Background(), "fan@example.com", "wrong")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Invalid credentials", statusErr.Message)
}

func TestLogin_MissingFields(t *testing.T) {
	c := NewClient(Options{BaseURL: "http://unused"})
	_, err := c.Register(context.Background(), "", "pw")
	assert.Error(t, err)
}

func TestChartByYear(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/Top2000/by-year/2024", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"position": 1, "songId": 5, "titel": "Bohemian Rhapsody", "artist": "Queen", "artistImage": "/a.png", "trend": 2},
			{"position": 2, "songId": 6, "titel": "Roller Coaster", "artist": "Danny Vera", "trend": null}
		]`))
	}), Options{})

	entries, err := c.ChartByYear(context.Background(), 2024)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "Queen", entries[0].Song.Artist)
	assert.Equal(t, "/a.png", entries[0].Song.ImageURL)
	require.NotNil(t, entries[0].Trend)
	assert.Equal(t, 2, *entries[0].Trend)
	assert.Nil(t, entries[1].Trend)
}

func TestStats_FetchesAllLists(t *testing.T) {
	var mu sync.Mutex
	paths := map[string]string{}

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths[strings.TrimPrefix(r.URL.Path, "/api/Stats/")] = r.URL.RawQuery
		mu.Unlock()

		if r.URL.Path == "/api/Stats/top-artists" {
			_, _ = w.Write([]byte(`[{"artist": "Queen", "songCount": 12}, "ABBA"]`))
			return
		}
		_, _ = w.Write([]byte(`[{"titel": "Song", "artist": "Band", "position": 3}]`))
	}), Options{})

	stats, err := c.Stats(context.Background(), 2023)
	require.NoError(t, err)

	assert.Len(t, paths, 10)
	assert.Equal(t, "year=2023", paths["drops"])
	assert.Empty(t, paths["ever-present"])
	assert.Equal(t, "take=10&year=2023", paths["top-artists"])

	require.Len(t, stats.TopArtists, 2)
	assert.Equal(t, StatItem{Label: "Queen", SongCount: 12}, stats.TopArtists[0])
	assert.Equal(t, "ABBA", stats.TopArtists[1].Label)
	assert.Equal(t, "Song — Band", stats.Rises[0].Label)
	assert.Equal(t, 3, stats.Rises[0].Position)
}

func TestStats_OneFailureFailsDashboard(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/Stats/dropouts" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}), Options{})

	_, err := c.Stats(context.Background(), 2024)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dropouts")
}

func TestID_Unmarshal(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		require.NoError(t, json.Unmarshal([]byte(tt.input), &id))
		assert.Equal(t, tt.want, id)
	}

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestAuthResult_Expiry(t *testing.T) {
	assert.True(t, AuthResult{}.Expiry().IsZero())
	assert.True(t, AuthResult{ExpiresAt: "garbage"}.Expiry().IsZero())
	assert.Equal(t, 2030, AuthResult{ExpiresAt: "2030-06-01T12:00:00.1234567"}.Expiry().Year())
}

func TestStatusError_Error(t *testing.T) {
	assert.Equal(t, "API returned status 500", (&StatusError{Code: 500}).Error())
	assert.Equal(t, "API status 404: gone", (&StatusError{Code: 404, Message: "gone"}).Error())
	assert.False(t, errors.Is(&StatusError{Code: 401}, ErrUnauthorized))
}
