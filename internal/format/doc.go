// Package format holds display helpers shared by the CLI and the TUI:
// durations, byte sizes, thousand separators, progress bars and ETAs.
package format
