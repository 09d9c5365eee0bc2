// Package dashboard is the full-screen terminal UI for sysmon.
//
// The terminal stands in for a window. Its size in cells is converted to
// display units (cell width x cell height) before it reaches the scale
// calculator, so an 80x24 terminal with the default geometry is the
// 480x320 reference window.
//
// Font sizes can't change in a terminal, so they are expressed as
// spacing instead:
//   - Title size: spaces between title letters. At the base size the
//     title is written normally, at twice the base size one space goes
//     between letters, and so on.
//   - Body size: blank lines between gauges, following the same rule.
//
// Keyboard controls:
//   - t: Toggle dark mode
//   - d / l: Switch to dark / light
//   - r: Refresh now
//   - up/down, pgup/pgdown: Scroll when gauges don't fit
//   - ?: Toggle help overlay
//   - q / Ctrl+C: Quit
//
// Sampling runs through app.Loop. Its scheduler is backed by tea.Tick, so
// every tick, resize and toggle is handled inside Update, one at a time.
package dashboard
