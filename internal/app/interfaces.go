package app

import (
	"context"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/session"
)

// Client is the part of the API client the application uses.
type Client interface {
	search.Source

	ChartByYear(ctx context.Context, year int) ([]api.ChartEntry, error)
	Artists(ctx context.Context) ([]api.Artist, error)
	Artist(ctx context.Context, id api.ID) (*api.Artist, error)
	Song(ctx context.Context, id api.ID) (*api.Song, error)
	Stats(ctx context.Context, year int) (*api.Stats, error)

	Playlists(ctx context.Context) ([]api.Playlist, error)
	Playlist(ctx context.Context, id api.ID) (*api.Playlist, error)
	CreatePlaylist(ctx context.Context, name string) (*api.Playlist, error)
	AddSong(ctx context.Context, playlistID, songID api.ID) error
	RemoveSong(ctx context.Context, playlistID, songID api.ID) error

	AdminArtists(ctx context.Context) ([]api.Artist, error)
	AdminSongs(ctx context.Context) ([]api.Song, error)
	AdminArtist(ctx context.Context, id api.ID) (*api.Artist, error)
	AdminSong(ctx context.Context, id api.ID) (*api.Song, error)
	UpdateArtist(ctx context.Context, id api.ID, edit api.ArtistEdit) error
	UpdateSong(ctx context.Context, id api.ID, edit api.SongEdit) error

	Login(ctx context.Context, email, password string) (session.Session, error)
	Register(ctx context.Context, email, password string) (session.Session, error)
	Logout() error
	IsAuthenticated() bool
	Sessions() session.Store
}

var _ Client = (*api.Client)(nil)
