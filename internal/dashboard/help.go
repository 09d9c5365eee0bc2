package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "t", Desc: "Toggle dark mode"},
	{Key: "d / l", Desc: "Dark / light theme"},
	{Key: "r", Desc: "Refresh now"},
	{Key: "up / down", Desc: "Scroll gauges"},
	{Key: "?", Desc: "Toggle this help"},
	{Key: "q / Ctrl+C", Desc: "Quit"},
}

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m *Model) renderHelpOverlay(st Styles) string {
	keyStyle := st.Title.Width(14)

	lines := []string{st.Title.Render("Keyboard Shortcuts"), ""}
	for _, binding := range helpBindings {
		lines = append(lines, keyStyle.Render(binding.Key)+st.Label.Render(binding.Desc))
	}
	lines = append(lines, "", st.Muted.Render("Press ? to close"))

	helpBox := st.Help.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		helpBox,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(m.surface.palette.Background),
	)
}
