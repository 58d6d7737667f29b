package nussinov

import (
	"context"
	"fmt"

	"github.com/agbru/rnafold/internal/progress"
)

// Folder is a folding strategy as seen by the orchestration layer.
type Folder interface {
	// Name returns a human-readable description of the strategy.
	Name() string
	// Fold builds the table and reconstructs the structure, sending progress
	// for folderIndex on progressChan when it is non-nil. Sends never block.
	Fold(ctx context.Context, progressChan chan<- progress.ProgressUpdate, folderIndex int, seq Sequence, opts Options) (*Result, error)
}

// FillStrategy decides how the score table is filled. The traceback is shared
// by every strategy.
type FillStrategy interface {
	Name() string
	Build(ctx context.Context, seq Sequence, opts Options, report progress.ProgressCallback) (*Table, error)
}

// SequentialFill fills every diagonal on the calling goroutine. It is the
// reference order the other strategies are checked against.
type SequentialFill struct{}

// Name implements FillStrategy.
func (SequentialFill) Name() string { return "Sequential (O(n³), single goroutine)" }

// Build implements FillStrategy.
func (SequentialFill) Build(ctx context.Context, seq Sequence, opts Options, report progress.ProgressCallback) (*Table, error) {
	opts.ParallelThreshold = 0
	return BuildScoreTableContext(ctx, seq, opts, report)
}

// DiagonalFill splits long diagonals across goroutines. A zero
// ParallelThreshold falls back to DefaultParallelThreshold.
type DiagonalFill struct{}

// Name implements FillStrategy.
func (DiagonalFill) Name() string { return "Diagonal (O(n³), parallel wavefront)" }

// Build implements FillStrategy.
func (DiagonalFill) Build(ctx context.Context, seq Sequence, opts Options, report progress.ProgressCallback) (*Table, error) {
	if opts.ParallelThreshold == 0 {
		opts.ParallelThreshold = DefaultParallelThreshold
	}
	return BuildScoreTableContext(ctx, seq, opts, report)
}

// FoldRunner adapts a FillStrategy to the Folder interface and wires progress
// reporting.
type FoldRunner struct {
	strategy FillStrategy
}

// NewFolder wraps a fill strategy.
func NewFolder(s FillStrategy) Folder {
	if s == nil {
		panic("nussinov: nil fill strategy")
	}
	return &FoldRunner{strategy: s}
}

// Name implements Folder.
func (r *FoldRunner) Name() string { return r.strategy.Name() }

// Fold implements Folder.
func (r *FoldRunner) Fold(ctx context.Context, progressChan chan<- progress.ProgressUpdate, folderIndex int, seq Sequence, opts Options) (*Result, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return r.FoldWithObservers(ctx, subject, folderIndex, seq, opts)
}

// FoldWithObservers folds seq and notifies every observer registered on
// subject at call time.
func (r *FoldRunner) FoldWithObservers(ctx context.Context, subject *progress.ProgressSubject, folderIndex int, seq Sequence, opts Options) (*Result, error) {
	var report progress.ProgressCallback
	if subject != nil && subject.ObserverCount() > 0 {
		report = subject.Freeze(folderIndex)
	}
	table, err := r.strategy.Build(ctx, seq, opts, report)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.strategy.Name(), err)
	}
	st, err := Reconstruct(seq, table, opts)
	if err != nil {
		return nil, err
	}
	return &Result{Table: table, Structure: st}, nil
}
