package tui

import (
	"time"

	"github.com/agbru/rnafold/internal/orchestration"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	FolderIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
	Generation      uint64
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries every strategy's outcome.
type ComparisonResultsMsg struct {
	Results []orchestration.FoldResult
}

// FinalResultMsg carries the result presented to the user.
type FinalResultMsg struct {
	Result  orchestration.FoldResult
	Options orchestration.PresentationOptions
}

// ErrorMsg reports that no strategy completed.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// FoldCompleteMsg is sent when orchestration returns.
type FoldCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the run context ends before the folds.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
