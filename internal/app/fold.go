package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/agbru/rnafold/internal/cli"
	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/metrics"
	"github.com/agbru/rnafold/internal/nussinov/memory"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/seqio"
	"github.com/agbru/rnafold/internal/ui"
)

// runFold folds the input with the selected strategies and prints the
// result in the requested format.
func (a *Application) runFold(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := withSignals(ctx)
	defer stopSignals()

	rec, err := a.readInput(ctx)
	if err != nil {
		return a.reportSetupError(err)
	}
	folders := orchestration.GetFoldersToRun(a.Config.Algo, a.Factory)

	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(rec, len(folders), out); code != apperrors.ExitSuccess {
			return code
		}
	}

	silent := a.Config.Quiet || a.Config.JSON
	if !silent {
		cli.PrintExecutionConfig(a.Config, rec.ID, rec.Seq, out)
		cli.PrintExecutionMode(folders, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if silent {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	a.Logger.Debug().
		Str("input", describeInput(rec)).
		Str("algo", a.Config.Algo).
		Int("threshold", a.Config.Threshold).
		Msg("folding")

	gc := memory.NewGCController(a.Config.GCMode, rec.Seq.Len())
	gc.SetLogger(a.Logger)
	collector := metrics.NewMemoryCollector()
	before := collector.Snapshot()

	gc.Begin()
	results := orchestration.ExecuteFolds(ctx, folders, rec.Seq, a.Config.ToFoldOptions(), reporter, progressOut)
	gc.End()

	mem := collector.Snapshot().Since(before)

	presOpts := orchestration.PresentationOptions{
		ID:        rec.ID,
		Sequence:  rec.Seq,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowTable: a.Config.ShowTable,
	}
	sink := &resultSink{silent: silent, errOut: a.ErrWriter}
	code := orchestration.AnalyzeComparisonResults(results, presOpts, sink, sink, progressOut)
	if code != apperrors.ExitSuccess || sink.final == nil {
		return code
	}

	return a.emitResult(out, rec, *sink.final, presOpts, mem)
}

// emitResult prints the quiet or JSON form, or the memory figures after a
// normal presentation, and writes the --output copy.
func (a *Application) emitResult(out io.Writer, rec seqio.Record, final orchestration.FoldResult, presOpts orchestration.PresentationOptions, mem metrics.MemorySnapshot) int {
	outputCfg := cli.OutputConfig{
		OutputFile:   a.Config.OutputFile,
		Quiet:        a.Config.Quiet,
		JSON:         a.Config.JSON,
		IncludeTable: a.Config.ShowTable,
	}

	if outputCfg.Quiet || outputCfg.JSON {
		if err := cli.DisplayResultWithConfig(out, final, presOpts, outputCfg); err != nil {
			a.Logger.Error().Err(err).Msg("writing result")
			fmt.Fprintf(a.ErrWriter, "Error writing result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	if a.Config.Details {
		cli.DisplayMemoryStats(mem.HeapAlloc, mem.TotalAlloc, mem.NumGC, mem.PauseTotalNs, out)
	}
	if outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(final, presOpts, outputCfg); err != nil {
			err = apperrors.WrapError(err, "saving result to %s", outputCfg.OutputFile)
			a.Logger.Error().Err(err).Msg("output file failed")
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	a.Logger.Debug().
		Str("input", describeInput(rec)).
		Str("strategy", final.Name).
		Dur("duration", final.Duration).
		Int("score", final.Result.Structure.Score).
		Msg("fold complete")
	return apperrors.ExitSuccess
}

// validateMemoryBudget refuses folds whose tables would not fit in
// --memory-limit.
func (a *Application) validateMemoryBudget(rec seqio.Record, strategies int, out io.Writer) int {
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		return a.reportSetupError(apperrors.NewConfigError("invalid --memory-limit: %v", err))
	}
	est := memory.EstimateMemoryUsage(rec.Seq.Len(), strategies)
	if est.TotalBytes > limit {
		fmt.Fprintf(a.ErrWriter, "Estimated memory %s exceeds limit %s.\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
		if strategies > 1 {
			fmt.Fprintf(a.ErrWriter, "Consider --algo sequential to keep a single table in memory.\n")
		}
		return apperrors.ExitCodeFor(apperrors.MemoryError{Requested: est.TotalBytes, Limit: limit})
	}
	if !a.Config.Quiet && !a.Config.JSON {
		fmt.Fprintf(out, "Memory estimate: %s (limit: %s)\n",
			memory.FormatMemoryEstimate(est), a.Config.MemoryLimit)
	}
	return apperrors.ExitSuccess
}

// resultSink records the result chosen by the analysis. Unless silent, it
// also prints the comparison and the result like the CLI presenter; when
// silent, diagnostics go to errOut only.
type resultSink struct {
	cli.CLIResultPresenter
	silent bool
	errOut io.Writer
	final  *orchestration.FoldResult
}

func (s *resultSink) PresentComparisonTable(results []orchestration.FoldResult, out io.Writer) {
	if !s.silent {
		s.CLIResultPresenter.PresentComparisonTable(results, out)
	}
}

func (s *resultSink) PresentResult(result orchestration.FoldResult, opts orchestration.PresentationOptions, out io.Writer) {
	s.final = &result
	if !s.silent {
		s.CLIResultPresenter.PresentResult(result, opts, out)
	}
}

func (s *resultSink) HandleError(err error, duration time.Duration, out io.Writer) int {
	if s.silent {
		out = s.errOut
	}
	return s.CLIResultPresenter.HandleError(err, duration, out)
}
