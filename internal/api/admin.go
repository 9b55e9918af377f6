package api

import (
	"context"
	"net/http"
	"net/url"
)

// ArtistEdit holds the editable fields of an artist.
type ArtistEdit struct {
	Biography string `json:"biography"`
	Wiki      string `json:"wiki"`
	Photo     string `json:"photo"`
}

// SongEdit holds the editable fields of a song.
type SongEdit struct {
	Lyrics   string `json:"lyrics"`
	ImageURL string `json:"imgUrl"`
	YouTube  string `json:"youtube"`
}

// Edit returns the editable fields of a.
func (a Artist) Edit() ArtistEdit {
	return ArtistEdit{Biography: a.Biography, Wiki: a.Wiki, Photo: a.Photo}
}

// WithEdit returns a copy of a with e applied.
func (a Artist) WithEdit(e ArtistEdit) Artist {
	a.Biography, a.Wiki, a.Photo = e.Biography, e.Wiki, e.Photo
	return a
}

// Edit returns the editable fields of s.
func (s Song) Edit() SongEdit {
	return SongEdit{Lyrics: s.Lyrics, ImageURL: s.ImageURL, YouTube: s.YouTube}
}

// WithEdit returns a copy of s with e applied.
func (s Song) WithEdit(e SongEdit) Song {
	s.Lyrics, s.ImageURL, s.YouTube = e.Lyrics, e.ImageURL, e.YouTube
	return s
}

// AdminArtists lists every artist for editing. It returns ErrForbidden for
// accounts without admin rights.
func (c *Client) AdminArtists(ctx context.Context) ([]Artist, error) {
	var artists []Artist
	if err := c.do(ctx, http.MethodGet, "/api/admin/artists", nil, accessAdmin, &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// AdminSongs lists every song for editing.
func (c *Client) AdminSongs(ctx context.Context) ([]Song, error) {
	var songs []Song
	if err := c.do(ctx, http.MethodGet, "/api/admin/songs", nil, accessAdmin, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// AdminArtist returns the full editable record of an artist.
func (c *Client) AdminArtist(ctx context.Context, id ID) (*Artist, error) {
	var artist Artist
	if err := c.do(ctx, http.MethodGet, adminPath("artists", id), nil, accessAdmin, &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// AdminSong returns the full editable record of a song.
func (c *Client) AdminSong(ctx context.Context, id ID) (*Song, error) {
	var song Song
	if err := c.do(ctx, http.MethodGet, adminPath("songs", id), nil, accessAdmin, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// UpdateArtist replaces the editable fields of an artist.
func (c *Client) UpdateArtist(ctx context.Context, id ID, edit ArtistEdit) error {
	return c.do(ctx, http.MethodPut, adminPath("artists", id), edit, accessAdmin, nil)
}

// UpdateSong replaces the editable fields of a song.
func (c *Client) UpdateSong(ctx context.Context, id ID, edit SongEdit) error {
	return c.do(ctx, http.MethodPut, adminPath("songs", id), edit, accessAdmin, nil)
}

func adminPath(kind string, id ID) string {
	return "/api/admin/" + kind + "/" + url.PathEscape(string(id))
}
