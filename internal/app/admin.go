package app

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/editform"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// adminKind is the record type edited on the admin tab.
type adminKind int

const (
	adminArtists adminKind = iota
	adminSongs
)

func (k adminKind) String() string {
	if k == adminSongs {
		return "songs"
	}
	return "artists"
}

// adminItem is one editable record.
type adminItem struct {
	Kind   adminKind
	Artist api.Artist
	Song   api.Song
}

func (it adminItem) id() api.ID {
	if it.Kind == adminSongs {
		return it.Song.ID
	}
	return it.Artist.ID
}

func (it adminItem) name() string {
	if it.Kind == adminSongs {
		return fallback(it.Song.Title, search.UnknownTitle)
	}
	return fallback(it.Artist.Name, search.UnknownArtist)
}

// matches filters on the artist name, or on song title and artist.
func (it adminItem) matches(filter string) bool {
	if filter == "" {
		return true
	}
	texts := []string{it.Artist.Name}
	if it.Kind == adminSongs {
		texts = []string{it.Song.Title, it.Song.Artist}
	}
	for _, t := range texts {
		if strings.Contains(search.Normalize(t), filter) {
			return true
		}
	}
	return false
}

// fields returns the edit form fields of the record.
func (it adminItem) fields() []editform.Field {
	if it.Kind == adminSongs {
		e := it.Song.Edit()
		return []editform.Field{
			{Label: "Lyrics", Value: e.Lyrics, Multiline: true},
			{Label: "Image URL", Value: e.ImageURL, Placeholder: "https://example.com/cover.jpg"},
			{Label: "YouTube", Value: e.YouTube, Placeholder: "https://www.youtube.com/watch?v=..."},
		}
	}
	e := it.Artist.Edit()
	return []editform.Field{
		{Label: "Biography", Value: e.Biography, Multiline: true},
		{Label: "Wikipedia", Value: e.Wiki, Placeholder: "https://nl.wikipedia.org/wiki/..."},
		{Label: "Photo URL", Value: e.Photo, Placeholder: "https://example.com/photo.jpg"},
	}
}

// withValues applies form values given in fields() order.
func (it adminItem) withValues(values []string) adminItem {
	v := make([]string, 3)
	copy(v, values)
	if it.Kind == adminSongs {
		it.Song = it.Song.WithEdit(api.SongEdit{Lyrics: v[0], ImageURL: v[1], YouTube: v[2]})
	} else {
		it.Artist = it.Artist.WithEdit(api.ArtistEdit{Biography: v[0], Wiki: v[1], Photo: v[2]})
	}
	return it
}

// adminEdit tags the edit form of a record.
type adminEdit struct {
	item adminItem
}

// adminFilterPrompt tags the prompt asking for a filter.
type adminFilterPrompt struct{}

type adminView struct {
	kind    adminKind
	items   [2][]adminItem
	loaded  [2]bool
	loading [2]bool
	filter  string
	list    list.Model[adminItem]
	err     string
}

func newAdminView() adminView {
	return adminView{list: list.New[adminItem](ui.PanelOverhead)}
}

func (v *adminView) setItems(kind adminKind, items []adminItem) {
	v.items[kind] = items
	v.loaded[kind] = true
	v.loading[kind] = false
	if kind == v.kind {
		v.err = ""
		v.refresh()
	}
}

func (v *adminView) setKind(kind adminKind) {
	v.kind = kind
	v.err = ""
	v.refresh()
	v.list.Select(0)
}

func (v *adminView) setFilter(filter string) {
	v.filter = search.Normalize(filter)
	v.refresh()
	v.list.Select(0)
}

// refresh rebuilds the visible rows from the loaded records and filter.
func (v *adminView) refresh() {
	var rows []adminItem
	for _, it := range v.items[v.kind] {
		if it.matches(v.filter) {
			rows = append(rows, it)
		}
	}
	v.list.SetItems(rows)
}

// replace stores a saved record in place.
func (v *adminView) replace(item adminItem) {
	for i, it := range v.items[item.Kind] {
		if it.id() == item.id() {
			v.items[item.Kind][i] = item
		}
	}
	if item.Kind == v.kind {
		cur := v.list.SelectedIndex()
		v.refresh()
		v.list.Select(cur)
	}
}

// reset forgets everything loaded with the previous account.
func (v *adminView) reset() {
	*v = adminView{kind: v.kind, list: v.list}
	v.list.SetItems(nil)
}

func (v adminView) view(loggedIn bool, width, height int) string {
	s := styles.T().S()
	title := "Admin · " + v.kind.String()
	if !loggedIn {
		return renderPanel(title, s.Muted.Render("Log in with L to edit artists and songs"), width, height)
	}
	if v.loaded[v.kind] {
		title += "  " + s.Muted.Render(humanize.Comma(int64(v.list.Len())))
	}
	if v.filter != "" {
		title += "  " + s.Muted.Render("filter: "+v.filter)
	}

	loading := v.loading[v.kind]
	body := placeholder(loading, v.err, "Nothing to edit")
	if !loading && v.err == "" && v.list.Len() > 0 {
		body = renderRows(v.list, width-ui.BorderHeight, adminRow)
	}
	return renderPanel(title, body, width, height)
}

// adminRow renders the name and the artist (songs) or genre (artists).
func adminRow(it adminItem, width int) string {
	s := styles.T().S()
	detail := it.Artist.Genre
	if it.Kind == adminSongs {
		detail = it.Song.Artist
	}
	detailWidth := min(max(width/3, 12), 32)
	nameWidth := max(width-detailWidth-1, 0)
	return render.Fit(it.name(), nameWidth) + " " + s.Muted.Render(render.Truncate(detail, detailWidth))
}

func fallback(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}
