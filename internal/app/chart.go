package app

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/layout"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

type chartView struct {
	list    list.Model[api.ChartEntry]
	year    int // year of the entries shown, 0 before the first load
	loading bool
	err     string
}

func newChartView() chartView {
	return chartView{list: list.New[api.ChartEntry](ui.PanelOverhead)}
}

func (v *chartView) setEntries(year int, entries []api.ChartEntry) {
	v.year = year
	v.loading = false
	v.err = ""
	v.list.SetItems(entries)
	v.list.Select(0)
}

func (v chartView) view(year, width, height int) string {
	title := fmt.Sprintf("Top 2000 · %d", year)
	if v.year == year && v.list.Len() > 0 {
		title += "  " + styles.T().S().Muted.Render(humanize.Comma(int64(v.list.Len()))+" songs")
	}

	body := placeholder(v.loading, v.err, "No chart for this year")
	if !v.loading && v.err == "" && v.list.Len() > 0 {
		body = renderRows(v.list, width-ui.BorderHeight, chartRow)
	}
	return renderPanel(title, body, width, height)
}

// chartRow renders "  12 ▲ 3  Title   Artist   1975".
func chartRow(e api.ChartEntry, width int) string {
	s := styles.T().S()

	pos := s.Position.Render(render.PadLeft(humanize.Comma(int64(e.Position)), 5))
	trend := render.Pad(trendText(e.Trend), 6)
	switch {
	case e.Trend == nil:
		trend = s.New.Render(trend)
	case *e.Trend > 0:
		trend = s.Rise.Render(trend)
	case *e.Trend < 0:
		trend = s.Drop.Render(trend)
	default:
		trend = s.Muted.Render(trend)
	}

	year := ""
	if e.Song.ReleaseYear > 0 {
		year = strconv.Itoa(e.Song.ReleaseYear)
	}

	titleWidth, artistWidth := layout.SongColumns(width, 5+1+6+1+5)

	return pos + " " + trend + " " +
		render.Fit(e.Song.Title, titleWidth) +
		s.Muted.Render(render.Fit(e.Song.Artist, artistWidth)) + " " +
		s.Subtle.Render(render.PadLeft(year, 4))
}

// trendText formats a position change: "▲ 3", "▼ 12", "=" or "new".
func trendText(trend *int) string {
	switch {
	case trend == nil:
		return "new"
	case *trend > 0:
		return "▲ " + strconv.Itoa(*trend)
	case *trend < 0:
		return "▼ " + strconv.Itoa(-*trend)
	default:
		return "="
	}
}
