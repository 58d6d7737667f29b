// Package ui holds the color themes shared by the CLI, the score-table
// renderer and the TUI. ANSI helpers read the active theme; lipgloss palettes
// are derived from it.
package ui
