package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/progress"
	"github.com/agbru/rnafold/internal/ui"
)

// CLIProgressReporter shows a spinner and progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numFolders int, out io.Writer) {
	DisplayProgress(wg, progressChan, numFolders, out)
}

// CLIResultPresenter prints colorized results for the terminal.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints strategy, duration and status columns. It
// pads manually because the cells carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.FoldResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW := len("Strategy"), len("Duration")
	durations := make([]string, len(results))
	for i, res := range results {
		nameW = max(nameW, len([]rune(res.Name)))
		durations[i] = displayDuration(res.Duration)
		durW = max(durW, len([]rune(durations[i])))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight(nameW-len("Strategy")),
		ui.ColorUnderline(), ui.ColorReset(), padRight(durW-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for i, res := range results {
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight(nameW-len([]rune(res.Name))),
			ui.ColorYellow(), durations[i], ui.ColorReset(), padRight(durW-len([]rune(durations[i]))),
			comparisonStatus(res))
	}
}

// comparisonStatus describes one row. A failed result carries no Result.
func comparisonStatus(res orchestration.FoldResult) string {
	switch {
	case res.Err != nil:
		return fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
	case res.Result == nil || res.Result.Structure == nil:
		return fmt.Sprintf("%s❌ Failure (no result)%s", ui.ColorRed(), ui.ColorReset())
	}
	return fmt.Sprintf("%s✅ Success (score %d)%s", ui.ColorGreen(), res.Result.Structure.Score, ui.ColorReset())
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%*s", n, "")
}

// PresentResult implements orchestration.ResultPresenter.
func (CLIResultPresenter) PresentResult(result orchestration.FoldResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(out, result, opts)
}

// FormatDuration implements orchestration.DurationFormatter.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError implements orchestration.ErrorHandler.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleFoldError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds the active theme to apperrors.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// DisplayMemoryStats prints runtime memory figures after a fold.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	if pauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}
