package dashboard

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// Styles is the set of lipgloss styles derived from one palette.
// Every style carries the palette background so the whole screen is
// painted, not just the cells behind text.
type Styles struct {
	palette theme.Palette

	Base   lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Border lipgloss.Style
	Muted  lipgloss.Style
	Stale  lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles builds styles for palette.
func NewStyles(palette theme.Palette) Styles {
	base := lipgloss.NewStyle().
		Background(palette.Background).
		Foreground(palette.Foreground)

	return Styles{
		palette: palette,
		Base:    base,
		Title:   base.Bold(true),
		Label:   base,
		Value:   base.Foreground(palette.BarFill).Bold(true),
		Border:  base.Foreground(palette.Trough),
		Muted:   base.Faint(true),
		Stale:   base.Italic(true).Faint(true),
		Help: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.BarFill).
			BorderBackground(palette.Background).
			Background(palette.Background).
			Foreground(palette.Foreground).
			Padding(1, 2),
	}
}

// Gauge renders a bar of the given width filled to percent (0-100).
// The filled part uses the bar color and the rest the trough color, both
// in the same color profile as the lipgloss styles.
func (s Styles) Gauge(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	bar := progress.New(
		progress.WithSolidFill(string(s.palette.BarFill)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithColorProfile(lipgloss.ColorProfile()),
	)
	bar.EmptyColor = string(s.palette.Trough)
	bar.Full = '█'
	bar.Empty = '█'

	return bar.ViewAs(percent / 100)
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func (s Styles) SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	// Left: "╭─ " (3 chars) + title + " " (1 char)
	leftWidth := 3 + lipgloss.Width(title) + 1
	// Right: " " (1 char) + value + " ╮" (2 chars)
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}
	middle := strings.Repeat("─", fillWidth)

	return s.Border.Render("╭─ ") +
		s.Title.Render(title) +
		s.Border.Render(" "+middle+" ") +
		s.Value.Render(value) +
		s.Border.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func (s Styles) SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return s.Border.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded to width.
// Format: │ content                                              │
func (s Styles) SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	// "│ " on the left and " │" on the right
	innerWidth := width - 4
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return s.Border.Render("│") +
		s.Base.Render(" ") +
		content +
		s.Base.Render(strings.Repeat(" ", padding)+" ") +
		s.Border.Render("│")
}

// Spaced inserts gap spaces between the letters of text.
func Spaced(text string, gap int) string {
	if gap <= 0 {
		return text
	}
	runes := []rune(text)
	sep := strings.Repeat(" ", gap)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, sep)
}
