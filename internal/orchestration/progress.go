package orchestration

import (
	"time"

	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/progress"
)

// ProgressAggregator folds per-strategy updates into one average and an ETA.
// The CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	state      *format.ProgressWithETA
	numFolders int
}

// NewProgressAggregator returns nil when numFolders <= 0.
func NewProgressAggregator(numFolders int) *ProgressAggregator {
	if numFolders <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:      format.NewProgressWithETA(numFolders),
		numFolders: numFolders,
	}
}

// AggregatedProgress is the view after one update.
type AggregatedProgress struct {
	FolderIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update records one update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.FolderIndex, update.Value)
	return AggregatedProgress{
		FolderIndex:     update.FolderIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// Consume applies every update from ch until it is closed, calling fn after
// each one. fn may be nil.
func (a *ProgressAggregator) Consume(ch <-chan progress.ProgressUpdate, fn func(AggregatedProgress)) {
	for u := range ch {
		ap := a.Update(u)
		if fn != nil {
			fn(ap)
		}
	}
}

// CalculateAverage returns the current average without updating, for
// ticker-driven refreshes.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current estimate without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumFolders returns the number of tracked strategies.
func (a *ProgressAggregator) NumFolders() int {
	return a.numFolders
}

// IsMultiFolder reports whether more than one strategy is tracked.
func (a *ProgressAggregator) IsMultiFolder() bool {
	return a.numFolders > 1
}

// DrainChannel discards updates until ch is closed.
func DrainChannel(ch <-chan progress.ProgressUpdate) {
	for range ch {
	}
}
