// Package ui holds the small pieces of styled CLI output used outside the
// dashboard: status symbols, semantic colors, status lines and a
// one-line spinner for slow steps like testing an SSH connection.
package ui
