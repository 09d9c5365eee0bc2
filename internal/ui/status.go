package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Success writes "✓ message" in the success color.
func Success(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolSuccess, ColorSuccess, format, args...)
}

// Fail writes "✗ message" in the error color.
func Fail(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolFail, ColorError, format, args...)
}

// Info writes "● message" in the info color.
func Info(w io.Writer, format string, args ...interface{}) {
	statusLine(w, SymbolInfo, ColorInfo, format, args...)
}

// Muted renders text in the muted color.
func Muted(text string) string {
	return lipgloss.NewStyle().Foreground(ColorMuted).Render(text)
}

func statusLine(w io.Writer, symbol string, color lipgloss.Color, format string, args ...interface{}) {
	style := lipgloss.NewStyle().Foreground(color)
	fmt.Fprintf(w, "%s %s\n", style.Render(symbol), fmt.Sprintf(format, args...))
}
