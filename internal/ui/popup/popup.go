// Package popup renders modal boxes and overlays them on a base view.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/top2000/internal/ui/styles"
)

// Popup is a modal component.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	// View renders the popup content without border or centering.
	View() string
	SetSize(width, height int)
}

// Box wraps content in a rounded border with horizontal padding.
// A width of 0 fits the content.
func Box(content string, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// Center places content in the middle of a screen of the given size.
func Center(content string, screenW, screenH int) string {
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, content)
}

// Render boxes content, limited to the screen width, and centers it.
func Render(content string, screenW, screenH int) string {
	width := 0
	if w := lipgloss.Width(content) + 4; w > screenW-2 {
		width = max(screenW-6, 10)
	}
	return Center(Box(content, width), screenW, screenH)
}

// Compose overlays popupView on base. Blank overlay lines and the
// blank margins around overlay content let the base show through.
func Compose(base, popupView string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(popupView, "\n")

	for i, line := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}
		start := len(plain) - len(trimmed)
		end := start + ansi.StringWidth(strings.TrimRight(trimmed, " "))

		baseLine := baseLines[i]
		if w := ansi.StringWidth(baseLine); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		prefix := ansi.Truncate(baseLine, start, "")
		if w := ansi.StringWidth(prefix); w < start {
			prefix += strings.Repeat(" ", start-w)
		}
		suffix := ansi.Cut(baseLine, end, width)
		if w := ansi.StringWidth(suffix); w < width-end {
			suffix = strings.Repeat(" ", width-end-w) + suffix
		}

		baseLines[i] = prefix + ansi.Cut(line, start, end) + "\x1b[0m" + suffix
	}
	return strings.Join(baseLines, "\n")
}
