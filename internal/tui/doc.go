// Package tui implements the interactive dashboard shown with --tui.
//
// The dashboard folds the input sequence with every selected strategy and
// shows per-strategy progress, the predicted structure, an optional view of
// the score table, and runtime and system resource usage. Orchestration runs
// on its own goroutine and talks to the bubbletea program through the
// bridge types, which implement the orchestration interfaces.
package tui
