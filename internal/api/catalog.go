package api

import (
	"context"
	"net/url"
	"strconv"
)

// ChartByYear returns the Top 2000 for the given year, ordered by position.
func (c *Client) ChartByYear(ctx context.Context, year int) ([]ChartEntry, error) {
	var entries []ChartEntry
	if err := c.get(ctx, "/api/Top2000/by-year/"+strconv.Itoa(year), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Artists returns every artist.
func (c *Client) Artists(ctx context.Context) ([]Artist, error) {
	var artists []Artist
	if err := c.get(ctx, "/api/Artist", &artists); err != nil {
		return nil, err
	}
	return artists, nil
}

// Artist returns a single artist.
func (c *Client) Artist(ctx context.Context, id ID) (*Artist, error) {
	var artist Artist
	if err := c.get(ctx, "/api/Artist/"+url.PathEscape(string(id)), &artist); err != nil {
		return nil, err
	}
	return &artist, nil
}

// Song returns a single song.
func (c *Client) Song(ctx context.Context, id ID) (*Song, error) {
	var song Song
	if err := c.get(ctx, "/api/Song/"+url.PathEscape(string(id)), &song); err != nil {
		return nil, err
	}
	return &song, nil
}
