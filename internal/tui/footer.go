package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	keymap KeyMap
	paused bool
	done   bool
	err    bool
	width  int
}

// NewFooterModel creates a footer.
func NewFooterModel(km KeyMap) FooterModel {
	return FooterModel{keymap: km}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the paused status.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run failed.
func (f *FooterModel) SetError(e bool) { f.err = e }

func (f FooterModel) status() string {
	switch {
	case f.err:
		return statusErrorStyle.Render("ERROR")
	case f.done:
		return statusDoneStyle.Render("DONE")
	case f.paused:
		return statusPausedStyle.Render("PAUSED")
	}
	return statusRunningStyle.Render("RUNNING")
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keymap.shortHelp()))
	for _, b := range f.keymap.shortHelp() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(hints, "  ")
	right := f.status() + " "
	gap := f.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
