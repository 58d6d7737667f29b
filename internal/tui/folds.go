package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/rnafold/internal/cli"
	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/orchestration"
)

type foldStatus int

const (
	statusRunning foldStatus = iota
	statusDone
	statusFailed
)

type foldRow struct {
	name     string
	progress float64
	status   foldStatus
	duration time.Duration
	err      error
}

// FoldsModel is the main panel: one row per strategy, then the presented
// structure and, when toggled, the score table.
type FoldsModel struct {
	seq       nussinov.Sequence
	rows      []foldRow
	final     *orchestration.FoldResult
	err       error
	showTable bool
	scroll    int
	width     int
	height    int
}

// NewFoldsModel creates the panel for the named strategies.
func NewFoldsModel(names []string, seq nussinov.Sequence, showTable bool) FoldsModel {
	rows := make([]foldRow, len(names))
	for i, n := range names {
		rows[i] = foldRow{name: n}
	}
	return FoldsModel{seq: seq, rows: rows, showTable: showTable}
}

// SetSize updates dimensions.
func (f *FoldsModel) SetSize(w, h int) {
	f.width = w
	f.height = h
	f.clampScroll()
}

// SetProgress updates the progress of strategy idx.
func (f *FoldsModel) SetProgress(idx int, v float64) {
	if idx < 0 || idx >= len(f.rows) || f.rows[idx].status != statusRunning {
		return
	}
	f.rows[idx].progress = v
}

// SetResults marks every row with its outcome, matched by strategy name.
func (f *FoldsModel) SetResults(results []orchestration.FoldResult) {
	for _, r := range results {
		for i := range f.rows {
			if f.rows[i].name != r.Name {
				continue
			}
			f.rows[i].duration = r.Duration
			f.rows[i].err = r.Err
			if r.Err != nil {
				f.rows[i].status = statusFailed
			} else {
				f.rows[i].status = statusDone
				f.rows[i].progress = 1
			}
		}
	}
}

// SetFinal stores the presented result.
func (f *FoldsModel) SetFinal(r orchestration.FoldResult) {
	f.final = &r
}

// SetError stores the error shown when every strategy failed.
func (f *FoldsModel) SetError(err error) { f.err = err }

// ToggleTable shows or hides the score table.
func (f *FoldsModel) ToggleTable() {
	f.showTable = !f.showTable
	f.clampScroll()
}

// Scroll moves the view by delta lines.
func (f *FoldsModel) Scroll(delta int) {
	f.scroll += delta
	f.clampScroll()
}

// Reset clears every outcome for a new run.
func (f *FoldsModel) Reset() {
	for i := range f.rows {
		f.rows[i] = foldRow{name: f.rows[i].name}
	}
	f.final = nil
	f.err = nil
	f.scroll = 0
}

func (f *FoldsModel) visibleHeight() int {
	return max(f.height-2, 1)
}

func (f *FoldsModel) clampScroll() {
	maxScroll := max(len(f.lines())-f.visibleHeight(), 0)
	f.scroll = min(max(f.scroll, 0), maxScroll)
}

func (f FoldsModel) rowLine(r foldRow) string {
	nameWidth := max(min(f.width/3, 40), 12)
	barWidth := max(f.width-nameWidth-30, 10)
	name := fmt.Sprintf("%-*s", nameWidth, truncate(r.name, nameWidth))

	var status string
	switch r.status {
	case statusDone:
		status = successStyle.Render("✓ " + format.FormatExecutionDuration(r.duration))
	case statusFailed:
		status = errorStyle.Render("✗ failed")
	default:
		status = dimStyle.Render("…")
	}
	return fmt.Sprintf(" %s %s %5.1f%% %s", name, accentStyle.Render(format.ProgressBar(r.progress, barWidth)), r.progress*100, status)
}

func (f FoldsModel) lines() []string {
	lines := []string{titleStyle.Render(" Strategies")}
	for _, r := range f.rows {
		lines = append(lines, f.rowLine(r))
		if r.err != nil {
			lines = append(lines, errorStyle.Render("   "+r.err.Error()))
		}
	}

	if f.err != nil {
		lines = append(lines, "", errorStyle.Render(" No strategy completed: "+f.err.Error()))
	}
	if f.final == nil || f.final.Result == nil {
		return lines
	}

	st := f.final.Result.Structure
	lines = append(lines, "", titleStyle.Render(" Structure"))
	chunk := max(f.width-6, 10)
	for start := 0; start < len(st.Bracket) || start == 0; start += chunk {
		end := min(start+chunk, len(st.Bracket))
		lines = append(lines, "  "+dimStyle.Render(string(f.seq[start:end])))
		lines = append(lines, "  "+bracketStyle.Render(st.Bracket[start:end]))
		if end == len(st.Bracket) {
			break
		}
	}
	lines = append(lines, fmt.Sprintf(" %s %d (%d pairs) by %s",
		metricLabelStyle.Render("Score:"), st.Score, len(st.Pairs), f.final.Name))

	if f.showTable {
		lines = append(lines, "", titleStyle.Render(" Score table"))
		window := max(min((f.width-4)/3, cli.DefaultTableWindow), 1)
		table := cli.RenderTable(f.seq, f.final.Result.Table, st, window)
		for _, l := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
			lines = append(lines, " "+l)
		}
	}
	return lines
}

// View renders the panel.
func (f FoldsModel) View() string {
	lines := f.lines()
	h := f.visibleHeight()
	start := min(f.scroll, max(len(lines)-h, 0))
	end := min(start+h, len(lines))
	return panelStyle.
		Width(max(f.width-2, 0)).
		Height(h).
		Render(strings.Join(lines[start:end], "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
