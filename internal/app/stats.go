package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/top2000/internal/api"
	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// statsListRows is the number of entries shown per statistics list.
const statsListRows = 10

type statsView struct {
	stats   *api.Stats
	year    int
	offset  int
	loading bool
	err     string
}

func newStatsView() statsView {
	return statsView{}
}

func (v *statsView) setStats(year int, stats *api.Stats) {
	v.year = year
	v.stats = stats
	v.offset = 0
	v.loading = false
	v.err = ""
}

// scroll moves the view by delta lines.
func (v *statsView) scroll(delta, width, height int) {
	total := len(v.lines(width - ui.BorderHeight))
	rows := max(height-ui.PanelOverhead, 1)
	v.offset = min(max(v.offset+delta, 0), max(total-rows, 0))
}

func (v statsView) view(year, width, height int) string {
	title := fmt.Sprintf("Statistics · %d", year)
	if v.loading || v.err != "" || v.stats == nil || v.year != year {
		return renderPanel(title, placeholder(v.loading, v.err, "No statistics"), width, height)
	}

	lines := v.lines(width - ui.BorderHeight)
	start := min(v.offset, len(lines))
	return renderPanel(title, strings.Join(lines[start:], "\n"), width, height)
}

func (v statsView) lines(width int) []string {
	s := styles.T().S()
	st := v.stats

	counts := []struct {
		label string
		n     int
	}{
		{"New entries", len(st.New)},
		{"Re-entries", len(st.ReEntries)},
		{"Dropouts", len(st.Dropouts)},
		{"Rises", len(st.Rises)},
		{"Drops", len(st.Drops)},
		{"Unchanged", len(st.Unchanged)},
		{"Ever present", len(st.EverPresent)},
		{"One-timers", len(st.OneTimers)},
	}

	var lines []string
	for _, c := range counts {
		lines = append(lines, render.Pad(c.label, 16)+s.Position.Render(render.PadLeft(humanize.Comma(int64(c.n)), 6)))
	}

	sections := []struct {
		title string
		items []api.StatItem
		value func(api.StatItem) string
	}{
		{"Top artists", st.TopArtists, func(i api.StatItem) string { return plural(i.SongCount, "song") }},
		{"Biggest rises", st.Rises, func(i api.StatItem) string { return "▲ " + humanize.Comma(int64(abs(i.Difference))) }},
		{"Biggest drops", st.Drops, func(i api.StatItem) string { return "▼ " + humanize.Comma(int64(abs(i.Difference))) }},
		{"New entries", st.New, func(i api.StatItem) string { return positionText(i.Position) }},
		{"Re-entries", st.ReEntries, func(i api.StatItem) string { return positionText(i.Position) }},
		{"Consecutive positions", st.ConsecutiveArtistPositions, func(i api.StatItem) string { return positionText(i.Position) }},
	}
	for _, sec := range sections {
		if len(sec.items) == 0 {
			continue
		}
		lines = append(lines, "", s.Title.Render(sec.title))
		for _, item := range sec.items[:min(len(sec.items), statsListRows)] {
			value := sec.value(item)
			lines = append(lines, render.Row(render.Truncate(item.Label, width-len(value)-2), s.Muted.Render(value), width))
		}
	}
	return lines
}

func positionText(pos int) string {
	if pos <= 0 {
		return ""
	}
	return "#" + humanize.Comma(int64(pos))
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return humanize.Comma(int64(n)) + " " + word + "s"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
