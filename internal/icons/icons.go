// Package icons provides the markers drawn in front of songs, artists and
// playlists.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Song     string
	Artist   string
	Playlist string
	Account  string
}

var (
	nerdIcons = Icons{
		Song:     "\uf001 ",     // nf-fa-music
		Artist:   "\uf007 ",     // nf-fa-user
		Playlist: "\U000f0cb8 ", // nf-md-playlist_music
		Account:  "\uf2bd ",     // nf-fa-user_circle
	}

	unicodeIcons = Icons{
		Song:     "♪ ",
		Artist:   "★ ",
		Playlist: "≡ ",
		Account:  "@ ",
	}

	noneIcons = Icons{}

	// current holds the active icon set
	current = unicodeIcons
)

// Init selects the icon set from the config value. An empty value keeps
// the unicode default; unknown values disable icons.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case "", StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// Song returns the song marker, "" when icons are off.
func Song() string {
	return current.Song
}

// Artist returns the artist marker, "" when icons are off.
func Artist() string {
	return current.Artist
}

// FormatPlaylist formats a playlist name with the appropriate icon.
func FormatPlaylist(name string) string {
	return current.Playlist + name
}

// FormatAccount formats the logged in account for the header.
func FormatAccount(email string) string {
	return current.Account + email
}
