package search

import (
	"net/url"

	"github.com/llehouerou/top2000/internal/api"
)

// Kind is the entity type of a candidate.
type Kind int

const (
	KindSong Kind = iota
	KindArtist
)

func (k Kind) String() string {
	if k == KindArtist {
		return "artist"
	}
	return "song"
}

// Key identifies a candidate across search axes.
type Key struct {
	Kind Kind
	ID   api.ID
}

// Path returns the navigation path for the key: /song/{id} or /artist/{id}.
func (k Key) Path() string {
	return "/" + k.Kind.String() + "/" + url.PathEscape(string(k.ID))
}

// Candidate is a song or an artist eligible for suggestions.
// Exactly one of Song and Artist is set.
type Candidate struct {
	Song   *api.Song
	Artist *api.Artist
}

// SongCandidate wraps a song.
func SongCandidate(s api.Song) Candidate {
	return Candidate{Song: &s}
}

// ArtistCandidate wraps an artist.
func ArtistCandidate(a api.Artist) Candidate {
	return Candidate{Artist: &a}
}

// Songs wraps a list of songs.
func Songs(songs []api.Song) []Candidate {
	out := make([]Candidate, len(songs))
	for i, s := range songs {
		out[i] = SongCandidate(s)
	}
	return out
}

// Artists wraps a list of artists.
func Artists(artists []api.Artist) []Candidate {
	out := make([]Candidate, len(artists))
	for i, a := range artists {
		out[i] = ArtistCandidate(a)
	}
	return out
}

// Kind returns the entity type.
func (c Candidate) Kind() Kind {
	if c.Artist != nil {
		return KindArtist
	}
	return KindSong
}

// Key returns the identity used for deduplication and navigation.
func (c Candidate) Key() Key {
	switch {
	case c.Artist != nil:
		return Key{Kind: KindArtist, ID: c.Artist.ID}
	case c.Song != nil:
		return Key{Kind: KindSong, ID: c.Song.ID}
	default:
		return Key{}
	}
}

// Text is the primary display text: song title or artist name.
func (c Candidate) Text() string {
	switch {
	case c.Artist != nil:
		return c.Artist.Name
	case c.Song != nil:
		return c.Song.Title
	default:
		return ""
	}
}

// Fields returns the texts a query is compared against.
func (c Candidate) Fields() []string {
	switch {
	case c.Artist != nil:
		return []string{c.Artist.Name}
	case c.Song != nil:
		return []string{c.Song.Title, c.Song.Artist}
	default:
		return nil
	}
}

// Path returns the navigation path of the candidate.
func (c Candidate) Path() string {
	return c.Key().Path()
}
