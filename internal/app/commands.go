package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/config"
	"github.com/llehouerou/top2000/internal/errmsg"
	"github.com/llehouerou/top2000/internal/search"
)

// call runs fn in a command with the request timeout applied.
func (m Model) call(fn func(ctx context.Context, client Client) tea.Msg) tea.Cmd {
	client, timeout := m.client, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx, client)
	}
}

func (m Model) loadChart(year int) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		entries, err := c.ChartByYear(ctx, year)
		return ChartLoadedMsg{Year: year, Entries: entries, Err: err}
	})
}

func (m Model) loadArtists() tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		artists, err := c.Artists(ctx)
		return ArtistsLoadedMsg{Artists: artists, Err: err}
	})
}

func (m Model) loadStats(year int) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		stats, err := c.Stats(ctx, year)
		return StatsLoadedMsg{Year: year, Stats: stats, Err: err}
	})
}

func (m Model) loadPlaylists() tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		playlists, err := c.Playlists(ctx)
		return PlaylistsLoadedMsg{Playlists: playlists, Err: err}
	})
}

// loadDetail fetches the data of a detail page. An artist page loads the
// artist and its songs in parallel.
func (m Model) loadDetail(r navctl.Route) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		msg := DetailLoadedMsg{Route: r}
		switch r.Page {
		case navctl.PageSong:
			msg.Song, msg.Err = c.Song(ctx, r.ID)

		case navctl.PageArtist:
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				var err error
				msg.Artist, err = c.Artist(gctx, r.ID)
				return err
			})
			g.Go(func() error {
				var err error
				msg.Songs, err = c.ArtistSongs(gctx, r.ID)
				return err
			})
			msg.Err = g.Wait()

		case navctl.PagePlaylist:
			msg.Playlist, msg.Err = c.Playlist(ctx, r.ID)
			if msg.Playlist != nil {
				msg.Songs = msg.Playlist.Songs
			}
		}
		return msg
	})
}

func (m Model) createPlaylist(name string) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		p, err := c.CreatePlaylist(ctx, name)
		msg := PlaylistChangedMsg{Op: errmsg.OpPlaylistCreate, Label: name, Err: err}
		if p != nil {
			msg.PlaylistID = p.ID
		}
		return msg
	})
}

func (m Model) addSong(playlistID api.ID, song search.DisplayItem) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		err := c.AddSong(ctx, playlistID, song.ID)
		return PlaylistChangedMsg{Op: errmsg.OpPlaylistAdd, PlaylistID: playlistID, Label: song.Title, Err: err}
	})
}

func (m Model) removeSong(playlistID api.ID, song api.Song) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		err := c.RemoveSong(ctx, playlistID, song.ID)
		return PlaylistChangedMsg{Op: errmsg.OpPlaylistRemove, PlaylistID: playlistID, Label: song.Title, Err: err}
	})
}

func (m Model) loadAdmin(kind adminKind) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		msg := AdminListLoadedMsg{Kind: kind}
		if kind == adminSongs {
			songs, err := c.AdminSongs(ctx)
			for _, s := range songs {
				msg.Items = append(msg.Items, adminItem{Kind: kind, Song: s})
			}
			msg.Err = err
			return msg
		}
		artists, err := c.AdminArtists(ctx)
		for _, a := range artists {
			msg.Items = append(msg.Items, adminItem{Kind: kind, Artist: a})
		}
		msg.Err = err
		return msg
	})
}

// loadAdminItem fetches the full record of a row. A record the detail
// endpoint does not know is edited from the list data.
func (m Model) loadAdminItem(item adminItem) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		full := item
		var err error
		if item.Kind == adminSongs {
			var s *api.Song
			if s, err = c.AdminSong(ctx, item.Song.ID); s != nil {
				full.Song = *s
			}
		} else {
			var a *api.Artist
			if a, err = c.AdminArtist(ctx, item.Artist.ID); a != nil {
				full.Artist = *a
			}
		}
		var se *api.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			err = nil
		}
		return AdminItemLoadedMsg{Item: full, Err: err}
	})
}

func (m Model) saveAdmin(item adminItem) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		var err error
		if item.Kind == adminSongs {
			err = c.UpdateSong(ctx, item.Song.ID, item.Song.Edit())
		} else {
			err = c.UpdateArtist(ctx, item.Artist.ID, item.Artist.Edit())
		}
		return AdminSavedMsg{Item: item, Err: err}
	})
}

func (m Model) authenticate(email, password string, register bool) tea.Cmd {
	return m.call(func(ctx context.Context, c Client) tea.Msg {
		auth := c.Login
		if register {
			auth = c.Register
		}
		s, err := auth(ctx, email, password)
		return AuthDoneMsg{Register: register, Session: s, Err: err}
	})
}

// clearStatusAfter schedules the removal of status message version.
func clearStatusAfter(version int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return StatusClearMsg{Version: version}
	})
}

// newSearchController builds a controller over the client. songsOnly
// restricts it to the song axis without artist expansion.
func (m Model) newSearchController(songsOnly bool) *search.Controller {
	cfg := m.opts.Search
	if songsOnly {
		cfg.Entities = []string{config.EntitySongs}
		expand := false
		cfg.ExpandArtistSongs = &expand
	}
	opts := search.OptionsFromConfig(cfg, m.client, m.logger)
	opts.Scheduler = m.opts.Scheduler
	return search.NewController(opts)
}
