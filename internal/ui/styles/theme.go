// Package styles holds the color palette and shared lipgloss styles.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette and pre-built styles.
type Theme struct {
	Primary   lipgloss.Color // chart red - active tab, cursor text
	Secondary lipgloss.Color // gold - positions, accents

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Rise  lipgloss.Color
	Drop  lipgloss.Color
	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built styles for common UI patterns.
type Styles struct {
	Base     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Title    lipgloss.Style
	Selected lipgloss.Style // row under the cursor
	Position lipgloss.Style // chart position column
	Rise     lipgloss.Style
	Drop     lipgloss.Style
	New      lipgloss.Style
	Error    lipgloss.Style
	Key      lipgloss.Style // key hints
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#e4002b"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#d0d0d0"),
	FgMuted:  lipgloss.Color("#8a8a8a"),
	FgSubtle: lipgloss.Color("#5c5c5c"),

	BgCursor: lipgloss.Color("#303030"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#e4002b"),

	Rise:  lipgloss.Color("#42b883"),
	Drop:  lipgloss.Color("#ff5555"),
	Error: lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for this theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

// Panel returns a rounded border style, highlighted when focused.
func (t *Theme) Panel(focused bool) lipgloss.Style {
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Selected: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.Primary).
			Bold(true),
		Position: lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		Rise:     lipgloss.NewStyle().Foreground(t.Rise),
		Drop:     lipgloss.NewStyle().Foreground(t.Drop),
		New:      lipgloss.NewStyle().Foreground(t.Secondary),
		Error:    lipgloss.NewStyle().Foreground(t.Error),
		Key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
	}
}
