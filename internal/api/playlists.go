package api

import (
	"context"
	"net/http"
	"net/url"
)

// Playlists returns the playlists of the logged-in user.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var playlists []Playlist
	if err := c.do(ctx, http.MethodGet, "/api/Playlist", nil, accessUser, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// Playlist returns a playlist with its songs.
func (c *Client) Playlist(ctx context.Context, id ID) (*Playlist, error) {
	var playlist Playlist
	if err := c.do(ctx, http.MethodGet, playlistPath(id), nil, accessUser, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist creates an empty playlist.
func (c *Client) CreatePlaylist(ctx context.Context, name string) (*Playlist, error) {
	body := map[string]string{"name": name}
	var playlist Playlist
	if err := c.do(ctx, http.MethodPost, "/api/Playlist", body, accessUser, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// AddSong appends a song to a playlist.
func (c *Client) AddSong(ctx context.Context, playlistID, songID ID) error {
	body := map[string]string{"songId": string(songID)}
	return c.do(ctx, http.MethodPost, playlistPath(playlistID)+"/songs", body, accessUser, nil)
}

// RemoveSong removes a song from a playlist.
func (c *Client) RemoveSong(ctx context.Context, playlistID, songID ID) error {
	path := playlistPath(playlistID) + "/songs/" + url.PathEscape(string(songID))
	return c.do(ctx, http.MethodDelete, path, nil, accessUser, nil)
}

func playlistPath(id ID) string {
	return "/api/Playlist/" + url.PathEscape(string(id))
}
