package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysmon/internal/theme"
)

// Key bindings as constants for consistency.
const (
	KeyQuit       = "q"
	KeyQuitAlt    = "ctrl+c"
	KeyRefresh    = "r"
	KeyToggleDark = "t"
	KeyDark       = "d"
	KeyLight      = "l"
	KeyToggleHelp = "?"
	KeyClose      = "esc"
)

// HandleKeyMsg processes keyboard input.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// Help toggle takes priority
	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyClose {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		m.shutdown()
		return true, tea.Quit

	case KeyRefresh:
		m.loop.Refresh()
		return true, nil

	case KeyToggleDark:
		// The checkbox flips first; the theme requested is whatever it now shows
		m.darkMode = !m.darkMode
		m.requestTheme()
		return true, nil

	case KeyDark:
		m.darkMode = true
		m.requestTheme()
		return true, nil

	case KeyLight:
		m.darkMode = false
		m.requestTheme()
		return true, nil
	}

	return false, nil
}

func (m *Model) requestTheme() {
	requested := theme.Light
	if m.darkMode {
		requested = theme.Dark
	}
	if err := m.loop.OnThemeToggle(requested); err != nil {
		// Keep the checkbox in sync with the theme actually shown
		m.darkMode = m.loop.Theme() == theme.Dark
	}
}
