package api

import (
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// searchCache keeps recent search responses so that retyping or deleting a
// character does not hit the API again. A nil cache is a no-op. Callers get
// their own copy of a cached slice.
//
// Each expirable LRU starts a cleanup goroutine that cannot be stopped, so a
// cache lives as long as the process.
type searchCache struct {
	songs   *expirable.LRU[string, []Song]
	artists *expirable.LRU[string, []Artist]
}

func newSearchCache(size int, ttl time.Duration) *searchCache {
	if size <= 0 {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &searchCache{
		songs:   expirable.NewLRU[string, []Song](size, nil, ttl),
		artists: expirable.NewLRU[string, []Artist](size, nil, ttl),
	}
}

func (c *searchCache) getSongs(key string) ([]Song, bool) {
	if c == nil {
		return nil, false
	}
	songs, ok := c.songs.Get(key)
	return slices.Clone(songs), ok
}

func (c *searchCache) putSongs(key string, songs []Song) {
	if c == nil {
		return
	}
	c.songs.Add(key, slices.Clone(songs))
}

func (c *searchCache) getArtists(key string) ([]Artist, bool) {
	if c == nil {
		return nil, false
	}
	artists, ok := c.artists.Get(key)
	return slices.Clone(artists), ok
}

func (c *searchCache) putArtists(key string, artists []Artist) {
	if c == nil {
		return
	}
	c.artists.Add(key, slices.Clone(artists))
}

func (c *searchCache) purge() {
	if c == nil {
		return
	}
	c.songs.Purge()
	c.artists.Purge()
}
