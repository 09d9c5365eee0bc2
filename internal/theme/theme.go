// Package theme defines the color themes and the controller that tracks
// which one is active.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysmon/internal/errors"
)

// Theme is a closed set of palettes.
type Theme int

const (
	Light Theme = iota
	Dark
)

// Palette is the set of colors a theme applies.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	BarFill    lipgloss.Color
	Trough     lipgloss.Color
}

var palettes = map[Theme]Palette{
	Light: {
		Background: lipgloss.Color("#f0f0f0"),
		Foreground: lipgloss.Color("#000000"),
		BarFill:    lipgloss.Color("#008000"),
		Trough:     lipgloss.Color("#e0e0e0"),
	},
	Dark: {
		Background: lipgloss.Color("#222222"),
		Foreground: lipgloss.Color("#ffffff"),
		BarFill:    lipgloss.Color("#00ff00"),
		Trough:     lipgloss.Color("#444444"),
	},
}

// All lists every theme in display order.
func All() []Theme {
	return []Theme{Light, Dark}
}

// Valid reports whether t is a defined theme.
func (t Theme) Valid() bool {
	_, ok := palettes[t]
	return ok
}

func (t Theme) String() string {
	switch t {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return fmt.Sprintf("theme(%d)", int(t))
	}
}

// Palette returns the colors for t. Undefined themes get the light palette.
func (t Theme) Palette() Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[Light]
}

// Parse converts a name from config or flags into a Theme.
func Parse(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, errors.New(errors.ErrTheme,
			fmt.Sprintf("Unknown theme '%s'", name),
			"Use 'light' or 'dark'.")
	}
}

// Controller holds the active theme. Exactly one theme is active at any
// time and a toggle either fully applies or leaves the state untouched.
type Controller struct {
	current Theme
}

// NewController starts at initial, or Light if initial is undefined.
func NewController(initial Theme) *Controller {
	if !initial.Valid() {
		initial = Light
	}
	return &Controller{current: initial}
}

// Toggle makes requested the active theme. Requesting the active theme
// again is a no-op that still succeeds.
func (c *Controller) Toggle(requested Theme) (Theme, error) {
	if !requested.Valid() {
		return c.current, errors.New(errors.ErrTheme,
			fmt.Sprintf("Can't switch to undefined %s", requested),
			"Use 'light' or 'dark'.")
	}
	c.current = requested
	return c.current, nil
}

// Current returns the active theme.
func (c *Controller) Current() Theme {
	return c.current
}

// CurrentPalette returns the active theme's colors.
func (c *Controller) CurrentPalette() Palette {
	return c.current.Palette()
}
