package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/rnafold/internal/config"
	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/seqio"
	"github.com/agbru/rnafold/internal/sysmon"
)

// Layout constants.
const (
	headerHeight           = 1
	footerHeight           = 1
	minBodyHeight          = 6
	FoldsPanelWidthPercent = 65
	TickInterval           = 500 * time.Millisecond
)

// foldRun is one launch of the folders. Reset replaces it with the next
// generation; messages from older generations are dropped.
type foldRun struct {
	ctx      context.Context
	cancel   context.CancelFunc
	gen      uint64
	done     bool
	exitCode int
}

func (r *foldRun) stop() {
	if r.cancel != nil {
		r.cancel()
	}
}

// screen is the terminal size split into the two body panels.
type screen struct{ w, h int }

func (s screen) body() int      { return max(s.h-headerHeight-footerHeight, minBodyHeight) }
func (s screen) leftWidth() int  { return s.w * FoldsPanelWidthPercent / 100 }
func (s screen) rightWidth() int { return s.w - s.leftWidth() }

// Model is the root bubbletea model.
type Model struct {
	header  HeaderModel
	folds   FoldsModel
	metrics MetricsModel
	footer  FooterModel

	keymap KeyMap
	run    foldRun
	screen screen

	folders   []nussinov.Folder
	parentCtx context.Context
	config    config.AppConfig
	record    seqio.Record
	ref       *programRef
	paused    bool
}

// NewModel creates the dashboard for folding rec with folders.
func NewModel(parentCtx context.Context, folders []nussinov.Folder, rec seqio.Record, cfg config.AppConfig, version string) Model {
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Name()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	km := DefaultKeyMap()

	m := Model{
		header:  NewHeaderModel(version, rec.ID, rec.Seq.Len()),
		folds:   NewFoldsModel(names, rec.Seq, cfg.ShowTable),
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(km),
		keymap:  km,
		folders: folders,
		config:  cfg,
		record:  rec,
		ref:     &programRef{},
	}
	m.parentCtx = parentCtx
	m.run = foldRun{ctx: ctx, cancel: cancel, exitCode: apperrors.ExitSuccess}
	return m
}

// ExitCode returns the exit code of the last completed run.
func (m Model) ExitCode() int { return m.run.exitCode }

// Init starts the fold and the samplers.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startFoldCmd(m.ref, m.run.ctx, m.folders, m.record, m.config, m.run.gen),
		watchContextCmd(m.run.ctx, m.run.gen),
	)
}

// Update handles every message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.w = msg.Width
		m.screen.h = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if msg.Generation != m.run.gen || m.paused {
			return m, nil
		}
		m.folds.SetProgress(msg.FolderIndex, msg.Value)
		m.metrics.UpdateProgress(msg.AverageProgress, msg.ETA)
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ComparisonResultsMsg:
		m.folds.SetResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.folds.SetFinal(msg.Result)
		if msg.Result.Result != nil {
			m.metrics.SetTableBytes(msg.Result.Result.Table.Bytes())
		}
		return m, nil

	case ErrorMsg:
		m.folds.SetError(msg.Err)
		m.footer.SetError(true)
		return m, nil

	case TickMsg:
		if m.run.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case FoldCompleteMsg:
		if msg.Generation != m.run.gen {
			return m, nil
		}
		m.run.done = true
		m.run.exitCode = msg.ExitCode
		m.header.SetDone()
		m.footer.SetDone(true)
		if msg.ExitCode != apperrors.ExitSuccess {
			m.footer.SetError(true)
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.run.gen {
			return m, nil
		}
		m.run.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.run.stop()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.run.stop()
		m.run.gen++
		m.run.ctx, m.run.cancel = context.WithCancel(m.parentCtx)

		m.header.Reset()
		m.folds.Reset()
		m.metrics = NewMetricsModel()
		m.metrics.SetSize(m.screen.rightWidth(), m.screen.body())
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.run.done = false
		m.paused = false
		m.run.exitCode = apperrors.ExitSuccess
		return m, m.startCmds()

	case key.Matches(msg, m.keymap.Table):
		m.folds.ToggleTable()
		return m, nil

	case key.Matches(msg, m.keymap.Up):
		m.folds.Scroll(-1)
	case key.Matches(msg, m.keymap.Down):
		m.folds.Scroll(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.folds.Scroll(-m.screen.body())
	case key.Matches(msg, m.keymap.PageDown):
		m.folds.Scroll(m.screen.body())
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.screen.w == 0 || m.screen.h == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.folds.View(), m.metrics.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.screen.w)
	m.footer.SetWidth(m.screen.w)
	m.folds.SetSize(m.screen.leftWidth(), m.screen.body())
	m.metrics.SetSize(m.screen.rightWidth(), m.screen.body())
}

// Run shows the dashboard until the user quits and returns the exit code of
// the last fold run.
func Run(ctx context.Context, folders []nussinov.Folder, rec seqio.Record, cfg config.AppConfig, version string) int {
	initTUIStyles()

	model := NewModel(ctx, folders, rec, cfg, version)
	defer model.run.stop()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		if apperrors.IsContextError(ctx.Err()) {
			return apperrors.ExitCodeFor(ctx.Err())
		}
		return apperrors.ExitErrorGeneric
	}
	if fm, ok := finalModel.(Model); ok {
		fm.run.stop()
		return fm.run.exitCode
	}
	return apperrors.ExitSuccess
}

func startFoldCmd(ref *programRef, ctx context.Context, folders []nussinov.Folder, rec seqio.Record, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref}

		foldCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		results := orchestration.ExecuteFolds(foldCtx, folders, rec.Seq, cfg.ToFoldOptions(), reporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			ID:        rec.ID,
			Sequence:  rec.Seq,
			Verbose:   cfg.Verbose,
			Details:   cfg.Details,
			ShowTable: cfg.ShowTable,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)
		return FoldCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSystem feeds the CPU and MEM sparklines.
var sampleSystem sysmon.Sampler = sysmon.Sample

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sampleSystem()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd reports the end of the run context. Reset cancels the old
// context on purpose, so the stale message carries its generation.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
