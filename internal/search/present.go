package search

import (
	"strconv"
	"strings"

	"github.com/llehouerou/top2000/internal/api"
)

// Placeholders for labels whose source field is absent.
const (
	UnknownTitle  = "Unknown title"
	UnknownArtist = "Unknown artist"
	NoBiography   = "No biography available"
)

// BiographyLength is the number of runes of a biography shown in a row.
const BiographyLength = 80

// DisplayItem is the uniform row shape shown for a search result.
type DisplayItem struct {
	Kind     Kind
	ID       api.ID
	Title    string
	Subtitle string // song: artist name; artist: genre (may be empty)
	Display  string // single-line label
	Detail   string // song: release year; artist: biography snippet
	Artwork  string
	Path     string
	Class    Class
}

// Key returns the identity of the row.
func (d DisplayItem) Key() Key {
	return Key{Kind: d.Kind, ID: d.ID}
}

// Present maps ranked results to display rows, keeping at most limit rows.
// A limit <= 0 keeps everything.
func Present(results []Ranked, limit int) []DisplayItem {
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	items := make([]DisplayItem, 0, len(results))
	for _, r := range results {
		switch {
		case r.Artist != nil:
			items = append(items, presentArtist(r.Artist, r.Class))
		case r.Song != nil:
			items = append(items, presentSong(r.Song, r.Class))
		}
	}
	return items
}

func presentSong(s *api.Song, class Class) DisplayItem {
	title := labelOr(s.Title, UnknownTitle)
	artist := labelOr(s.Artist, UnknownArtist)

	item := DisplayItem{
		Kind:     KindSong,
		ID:       s.ID,
		Title:    title,
		Subtitle: artist,
		Display:  title + " — " + artist,
		Artwork:  s.ImageURL,
		Path:     Key{Kind: KindSong, ID: s.ID}.Path(),
		Class:    class,
	}
	if s.ReleaseYear > 0 {
		item.Detail = strconv.Itoa(s.ReleaseYear)
	}
	return item
}

func presentArtist(a *api.Artist, class Class) DisplayItem {
	name := labelOr(a.Name, UnknownArtist)
	genre := strings.TrimSpace(a.Genre)

	display := name
	if genre != "" {
		display += " · " + genre
	}

	return DisplayItem{
		Kind:     KindArtist,
		ID:       a.ID,
		Title:    name,
		Subtitle: genre,
		Display:  display,
		Detail:   TruncateBiography(a.Biography, BiographyLength),
		Artwork:  a.Photo,
		Path:     Key{Kind: KindArtist, ID: a.ID}.Path(),
		Class:    class,
	}
}

// TruncateBiography shortens text to n runes followed by an ellipsis, or
// returns NoBiography when text is empty.
func TruncateBiography(text string, n int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return NoBiography
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}

func labelOr(s, placeholder string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return placeholder
}
