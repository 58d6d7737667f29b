package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rnafold/internal/format"
)

// HeaderModel renders the top bar: title, version, input and elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	seqID     string
	seqLen    int
	width     int
}

// NewHeaderModel creates a header for the sequence id of length n.
func NewHeaderModel(version, seqID string, n int) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		seqID:     seqID,
		seqLen:    n,
	}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the running or frozen elapsed time.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "RNAFold Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := dimStyle.Render(" | ")
	input := accentStyle.Render(fmt.Sprintf("%s (%s nt)", h.seqID, format.FormatInt(h.seqLen)))
	elapsed := accentStyle.Render("Elapsed: " + format.FormatExecutionDuration(h.Elapsed()))

	row := titleStyle.Render(titleText) + pipe + input + pipe + elapsed
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}
