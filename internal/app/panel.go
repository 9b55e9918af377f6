package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/top2000/internal/ui"
	"github.com/llehouerou/top2000/internal/ui/list"
	"github.com/llehouerou/top2000/internal/ui/render"
	"github.com/llehouerou/top2000/internal/ui/styles"
)

// renderPanel draws a bordered box of exactly width x height holding a
// title line, a separator and body.
func renderPanel(title, body string, width, height int) string {
	if width < 4 || height < ui.PanelOverhead {
		return ""
	}
	inner := width - ui.BorderHeight
	s := styles.T().S()

	lines := []string{
		s.Title.Render(render.Truncate(title, inner)),
		s.Subtle.Render(render.Separator(inner)),
	}
	if body != "" {
		lines = append(lines, strings.Split(body, "\n")...)
	}
	rows := height - ui.BorderHeight
	if len(lines) > rows {
		lines = lines[:rows]
	}

	return styles.T().Panel(true).
		Width(inner).
		Height(rows).
		Render(strings.Join(lines, "\n"))
}

// renderRows renders the visible rows of l, highlighting the cursor row.
func renderRows[T any](l list.Model[T], width int, row func(item T, width int) string) string {
	start, end := l.Visible()
	items := l.Items()
	s := styles.T().S()

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := row(items[i], width)
		if i == l.SelectedIndex() {
			plain := ansi.Strip(line)
			line = s.Selected.Render(render.Pad(plain, width))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// placeholder returns the muted message shown instead of a list.
func placeholder(loading bool, err, empty string) string {
	s := styles.T().S()
	switch {
	case loading:
		return s.Muted.Render("Loading…")
	case err != "":
		return s.Error.Render(err)
	default:
		return s.Muted.Render(empty)
	}
}
