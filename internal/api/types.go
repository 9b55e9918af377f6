package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ID is a record identity. The API sends ids as numbers on some endpoints
// and strings on others; both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Song is a song record as returned by search, listing and playlist endpoints.
type Song struct {
	ID          ID
	Title       string
	Artist      string
	ArtistID    ID
	ImageURL    string
	ReleaseYear int
	Duration    string
	Lyrics      string
	YouTube     string
}

func (s *Song) UnmarshalJSON(data []byte) error {
	var raw struct {
		SongID      ID     `json:"songId"`
		ID          ID     `json:"id"`
		Titel       string `json:"titel"`
		Title       string `json:"title"`
		SongName    string `json:"songName"`
		ArtistName  string `json:"artistName"`
		Artist      string `json:"artist"`
		ArtistID    ID     `json:"artistId"`
		ImgURL      string `json:"imgUrl"`
		SongImage   string `json:"songImage"`
		Image       string `json:"image"`
		Thumbnail   string `json:"thumbnail"`
		ArtistImage string `json:"artistImage"`
		ReleaseYear int    `json:"releaseYear"`
		Year        int    `json:"year"`
		Duration    string `json:"duration"`
		Lyrics      string `json:"lyrics"`
		YouTube     string `json:"youtube"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Song{
		ID:          firstID(raw.SongID, raw.ID),
		Title:       firstNonEmpty(raw.Titel, raw.Title, raw.SongName),
		Artist:      firstNonEmpty(raw.ArtistName, raw.Artist),
		ArtistID:    raw.ArtistID,
		ImageURL:    firstNonEmpty(raw.ImgURL, raw.SongImage, raw.Image, raw.Thumbnail, raw.ArtistImage),
		ReleaseYear: raw.ReleaseYear,
		Duration:    raw.Duration,
		Lyrics:      raw.Lyrics,
		YouTube:     raw.YouTube,
	}
	if s.ReleaseYear == 0 {
		s.ReleaseYear = raw.Year
	}
	return nil
}

// Artist is an artist record.
type Artist struct {
	ID        ID
	Name      string
	Genre     string
	Biography string
	Photo     string
	Website   string
	Wiki      string
}

func (a *Artist) UnmarshalJSON(data []byte) error {
	var raw struct {
		ArtistID  ID     `json:"artistId"`
		ID        ID     `json:"id"`
		Name      string `json:"name"`
		Naam      string `json:"naam"`
		Genre     string `json:"genre"`
		Biography string `json:"biography"`
		Bio       string `json:"bio"`
		Photo     string `json:"photo"`
		Image     string `json:"image"`
		Website   string `json:"website"`
		Wiki      string `json:"wiki"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Artist{
		ID:        firstID(raw.ArtistID, raw.ID),
		Name:      firstNonEmpty(raw.Name, raw.Naam),
		Genre:     raw.Genre,
		Biography: firstNonEmpty(raw.Biography, raw.Bio),
		Photo:     firstNonEmpty(raw.Photo, raw.Image),
		Website:   raw.Website,
		Wiki:      raw.Wiki,
	}
	return nil
}

// ChartEntry is one row of a yearly Top 2000 chart.
type ChartEntry struct {
	Position int
	Song     Song
	// Trend is the position change versus the previous year (positive = rise).
	// Nil for new entries.
	Trend *int
}

func (e *ChartEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position int  `json:"position"`
		Trend    *int `json:"trend"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var song Song
	if err := json.Unmarshal(data, &song); err != nil {
		return err
	}
	*e = ChartEntry{Position: raw.Position, Song: song, Trend: raw.Trend}
	return nil
}

// Playlist is a user playlist. Songs is only filled by the detail endpoint.
type Playlist struct {
	ID    ID
	Name  string
	Songs []Song
}

func (p *Playlist) UnmarshalJSON(data []byte) error {
	var raw struct {
		PlaylistID ID     `json:"playlistId"`
		ID         ID     `json:"id"`
		Name       string `json:"name"`
		Songs      []Song `json:"songs"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Playlist{ID: firstID(raw.PlaylistID, raw.ID), Name: raw.Name, Songs: raw.Songs}
	return nil
}

// AuthResult is returned by the login and register endpoints.
type AuthResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    string `json:"expiresAt"`
}

// Expiry parses ExpiresAt, returning the zero time when absent or malformed.
func (r AuthResult) Expiry() time.Time {
	if r.ExpiresAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, r.ExpiresAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// StatItem is one entry of a statistics list. The stats endpoints return
// heterogeneous records; Label holds the best human-facing text found.
type StatItem struct {
	Label            string
	Position         int
	PreviousPosition int
	Difference       int
	SongCount        int
}

func (s *StatItem) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &s.Label)
	}

	var raw struct {
		Artist           string `json:"artist"`
		Titel            string `json:"titel"`
		Name             string `json:"name"`
		SongName         string `json:"songName"`
		Title            string `json:"title"`
		ArtistName       string `json:"artistName"`
		Position         int    `json:"position"`
		PreviousPosition int    `json:"previousPosition"`
		Difference       int    `json:"difference"`
		SongCount        int    `json:"songCount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	label := firstNonEmpty(raw.Titel, raw.Title, raw.SongName, raw.Name)
	artist := firstNonEmpty(raw.Artist, raw.ArtistName)
	switch {
	case label != "" && artist != "":
		label = label + " — " + artist
	case label == "":
		label = artist
	}

	*s = StatItem{
		Label:            label,
		Position:         raw.Position,
		PreviousPosition: raw.PreviousPosition,
		Difference:       raw.Difference,
		SongCount:        raw.SongCount,
	}
	return nil
}

// Stats is the statistics dashboard for one chart year.
type Stats struct {
	Year                       int
	Drops                      []StatItem
	Rises                      []StatItem
	EverPresent                []StatItem
	New                        []StatItem
	Dropouts                   []StatItem
	ReEntries                  []StatItem
	Unchanged                  []StatItem
	ConsecutiveArtistPositions []StatItem
	OneTimers                  []StatItem
	TopArtists                 []StatItem
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func firstID(ids ...ID) ID {
	for _, id := range ids {
		if id != "" {
			return id
		}
	}
	return ""
}
