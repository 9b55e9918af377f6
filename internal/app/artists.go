package app

import (
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/search"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

type artistsView struct {
	list    list.Model[api.Artist]
	loaded  bool
	loading bool
	err     string
}

func newArtistsView() artistsView {
	return artistsView{list: list.New[api.Artist](ui.PanelOverhead)}
}

func (v *artistsView) setArtists(artists []api.Artist) {
	v.loaded = true
	v.loading = false
	v.err = ""
	v.list.SetItems(artists)
}

func (v artistsView) view(width, height int) string {
	title := "Artists"
	if v.list.Len() > 0 {
		title += "  " + styles.T().S().Muted.Render(humanize.Comma(int64(v.list.Len())))
	}

	body := placeholder(v.loading, v.err, "No artists")
	if !v.loading && v.err == "" && v.list.Len() > 0 {
		body = renderRows(v.list, width-ui.BorderHeight, artistRow)
	}
	return renderPanel(title, body, width, height)
}

// artistRow renders the name, genre and the start of the biography.
func artistRow(a api.Artist, width int) string {
	s := styles.T().S()

	nameWidth := min(max(width/3, 12), 32)
	genreWidth := 14
	bioWidth := max(width-nameWidth-genreWidth-2, 0)

	name := a.Name
	if name == "" {
		name = search.UnknownArtist
	}
	bio := search.TruncateBiography(a.Biography, search.BiographyLength)

	return render.Fit(name, nameWidth) + " " +
		s.Muted.Render(render.Fit(a.Genre, genreWidth)) + " " +
		s.Subtle.Render(render.Truncate(bio, bioWidth))
}
