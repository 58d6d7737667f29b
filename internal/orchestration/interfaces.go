package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
)

// FoldResult is the outcome of one strategy. It is the shared domain type
// between orchestration and presentation.
type FoldResult struct {
	// Name is the strategy description, e.g. "Sequential (O(n³), single goroutine)".
	Name string
	// Result holds the table and structure. It is nil if Err is set.
	Result *nussinov.Result
	// Duration is the wall time of build plus traceback.
	Duration time.Duration
	// Err is the failure, if any.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	ID        string
	Sequence  nussinov.Sequence
	Verbose   bool
	Details   bool
	ShowTable bool
}

// ProgressReporter displays fold progress. DisplayProgress runs in its own
// goroutine until progressChan is closed, then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numFolders int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numFolders int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numFolders int, out io.Writer) {
	f(wg, progressChan, numFolders, out)
}

// NullProgressReporter drains the channel without output. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter presents fold results.
type ResultPresenter interface {
	// PresentComparisonTable displays one line per strategy.
	PresentComparisonTable(results []FoldResult, out io.Writer)
	// PresentResult displays the retained structure.
	PresentResult(result FoldResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler turns fold errors into exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
