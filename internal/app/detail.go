package app

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/app/navctl"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/layout"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// detailView shows a song, an artist with its songs, or a playlist.
type detailView struct {
	route    navctl.Route
	song     *api.Song
	artist   *api.Artist
	playlist *api.Playlist
	songs    list.Model[api.Song]
	loading  bool
	err      string
}

func newDetailView() detailView {
	return detailView{songs: list.New[api.Song](ui.PanelOverhead)}
}

// open shows route in the loading state.
func (v *detailView) open(r navctl.Route) {
	v.route = r
	v.song, v.artist, v.playlist = nil, nil, nil
	v.songs.SetItems(nil)
	v.songs.Select(0)
	v.loading = true
	v.err = ""
}

func (v *detailView) apply(msg DetailLoadedMsg) {
	v.loading = false
	v.song, v.artist, v.playlist = msg.Song, msg.Artist, msg.Playlist
	v.songs.SetItems(msg.Songs)
}

// headerLines returns the rows above the song list.
func (v detailView) headerLines(width int) []string {
	s := styles.T().S()
	var lines []string

	switch {
	case v.song != nil:
		song := v.song
		lines = append(lines,
			s.Muted.Render("Artist   ")+orDefault(song.Artist, search.UnknownArtist),
			s.Muted.Render("Released ")+orDefault(yearText(song.ReleaseYear), "unknown"),
		)
		if song.Duration != "" {
			lines = append(lines, s.Muted.Render("Duration ")+song.Duration)
		}
		if song.ImageURL != "" {
			lines = append(lines, s.Muted.Render("Artwork  ")+s.Subtle.Render(render.Truncate(song.ImageURL, width-9)))
		}
		if song.ArtistID != "" {
			lines = append(lines, "", s.Subtle.Render("enter: open artist"))
		}

	case v.artist != nil:
		a := v.artist
		if a.Genre != "" {
			lines = append(lines, s.Muted.Render("Genre   ")+a.Genre)
		}
		if a.Website != "" {
			lines = append(lines, s.Muted.Render("Website ")+render.Truncate(a.Website, width-8))
		}
		bio := strings.TrimSpace(a.Biography)
		if bio == "" {
			bio = search.NoBiography
		}
		wrapped := lipgloss.NewStyle().Width(width).Render(render.Sanitize(bio))
		bioLines := strings.Split(wrapped, "\n")
		if len(bioLines) > 6 {
			bioLines = append(bioLines[:6], render.Ellipsis)
		}
		lines = append(lines, "")
		lines = append(lines, bioLines...)
		lines = append(lines, "", s.Title.Render("Songs")+"  "+s.Muted.Render(plural(v.songs.Len(), "song")))

	case v.playlist != nil:
		lines = append(lines, s.Muted.Render(plural(v.songs.Len(), "song"))+"  "+
			s.Subtle.Render("a: add song · d: remove song"))
	}
	return lines
}

func (v detailView) title() string {
	switch {
	case v.song != nil:
		return orDefault(v.song.Title, search.UnknownTitle)
	case v.artist != nil:
		return orDefault(v.artist.Name, search.UnknownArtist)
	case v.playlist != nil:
		return "Playlist · " + v.playlist.Name
	}
	switch v.route.Page {
	case navctl.PageSong:
		return "Song"
	case navctl.PageArtist:
		return "Artist"
	}
	return "Playlist"
}

// hasSongs reports whether the page lists songs.
func (v detailView) hasSongs() bool {
	return v.route.Page == navctl.PageArtist || v.route.Page == navctl.PagePlaylist
}

// resize gives the song list the height left under the header lines.
func (v *detailView) resize(width, height int) {
	header := len(v.headerLines(width - ui.BorderHeight))
	v.songs.SetSize(width, max(height-header, ui.PanelOverhead))
}

func (v detailView) view(width, height int) string {
	inner := width - ui.BorderHeight
	if v.loading || v.err != "" {
		return renderPanel(v.title(), placeholder(v.loading, v.err, ""), width, height)
	}

	lines := v.headerLines(inner)
	if v.hasSongs() {
		if v.songs.Len() == 0 {
			lines = append(lines, styles.T().S().Muted.Render("No songs"))
		} else {
			lines = append(lines, renderRows(v.songs, inner, songRow))
		}
	}
	return renderPanel(v.title(), strings.Join(lines, "\n"), width, height)
}

func songRow(song api.Song, width int) string {
	s := styles.T().S()
	year := yearText(song.ReleaseYear)
	titleWidth, artistWidth := layout.SongColumns(width, 5)
	return render.Fit(orDefault(song.Title, search.UnknownTitle), titleWidth) +
		s.Muted.Render(render.Fit(song.Artist, artistWidth)) + " " +
		s.Subtle.Render(render.PadLeft(year, 4))
}

func yearText(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
