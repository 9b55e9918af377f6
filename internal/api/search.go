package api

import (
	"context"
	"net/url"
	"strings"
)

// SearchSongs searches songs by title.
func (c *Client) SearchSongs(ctx context.Context, query string) ([]Song, error) {
	query = strings.TrimSpace(query)
	key := "song:" + strings.ToLower(query)
	if songs, ok := c.cache.getSongs(key); ok {
		return songs, nil
	}

	var songs []Song
	if err := c.get(ctx, "/api/Song/search/"+url.PathEscape(query), &songs); err != nil {
		return nil, err
	}

	c.cache.putSongs(key, songs)
	return songs, nil
}

// SearchArtists searches artists by name.
func (c *Client) SearchArtists(ctx context.Context, query string) ([]Artist, error) {
	query = strings.TrimSpace(query)
	key := "artist:" + strings.ToLower(query)
	if artists, ok := c.cache.getArtists(key); ok {
		return artists, nil
	}

	var artists []Artist
	if err := c.get(ctx, "/api/Artist/search/"+url.PathEscape(query), &artists); err != nil {
		return nil, err
	}

	c.cache.putArtists(key, artists)
	return artists, nil
}

// ArtistSongs returns all songs of an artist.
func (c *Client) ArtistSongs(ctx context.Context, artistID ID) ([]Song, error) {
	key := "artist-songs:" + string(artistID)
	if songs, ok := c.cache.getSongs(key); ok {
		return songs, nil
	}

	var songs []Song
	if err := c.get(ctx, "/api/Artist/"+url.PathEscape(string(artistID))+"/songs", &songs); err != nil {
		return nil, err
	}

	c.cache.putSongs(key, songs)
	return songs, nil
}

// PurgeCache drops all cached search responses.
func (c *Client) PurgeCache() {
	c.cache.purge()
}
