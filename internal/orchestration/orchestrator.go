package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
)

const tracerName = "github.com/agbru/rnafold/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel per strategy so a slow
// UI rarely forces updates to be dropped.
const ProgressBufferMultiplier = 5

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// ExecuteFolds runs every folder concurrently on seq and collects one
// FoldResult per folder, in input order. A failing folder does not cancel the
// others. Each fold runs inside a span carrying the strategy name and
// sequence length; spans are no-ops unless a tracer provider is installed.
func ExecuteFolds(ctx context.Context, folders []nussinov.Folder, seq nussinov.Sequence, opts nussinov.Options, progressReporter ProgressReporter, out io.Writer) []FoldResult {
	ctx, span := tracer().Start(ctx, "ExecuteFolds", trace.WithAttributes(
		attribute.Int("rnafold.sequence_length", seq.Len()),
		attribute.Int("rnafold.strategies", len(folders)),
	))
	defer span.End()

	var g errgroup.Group
	results := make([]FoldResult, len(folders))
	progressChan := make(chan progress.ProgressUpdate, len(folders)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(folders), out)

	for i, f := range folders {
		g.Go(func() error {
			results[i] = runFold(ctx, f, progressChan, i, seq, opts)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results
}

func runFold(ctx context.Context, f nussinov.Folder, progressChan chan<- progress.ProgressUpdate, idx int, seq nussinov.Sequence, opts nussinov.Options) FoldResult {
	ctx, span := tracer().Start(ctx, "Fold", trace.WithAttributes(
		attribute.String("rnafold.strategy", f.Name()),
		attribute.Int("rnafold.min_loop", opts.MinLoopLength),
	))
	defer span.End()

	start := time.Now()
	res, err := f.Fold(ctx, progressChan, idx, seq, opts)
	fr := FoldResult{Name: f.Name(), Result: res, Duration: time.Since(start), Err: err}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else if res != nil && res.Structure != nil {
		span.SetAttributes(attribute.Int("rnafold.score", res.Structure.Score))
	}
	return fr
}

// GetFoldersToRun resolves the --algo selection. "all" returns every
// registered strategy in name order; an unknown name returns nil.
func GetFoldersToRun(algo string, factory nussinov.FolderFactory) []nussinov.Folder {
	if algo == "all" {
		keys := factory.List()
		folders := make([]nussinov.Folder, 0, len(keys))
		for _, k := range keys {
			if f, err := factory.Get(k); err == nil {
				folders = append(folders, f)
			}
		}
		return folders
	}
	if f, err := factory.Get(algo); err == nil {
		return []nussinov.Folder{f}
	}
	return nil
}

// agree reports whether two successful results carry the same table and
// the same structure.
func agree(a, b *nussinov.Result) bool {
	return a.Table.Equal(b.Table) &&
		a.Structure.Score == b.Structure.Score &&
		a.Structure.Bracket == b.Structure.Bracket
}

// AnalyzeComparisonResults sorts results (successes first, then by duration),
// prints the comparison table, checks that every successful strategy agrees,
// and presents the fastest one. It returns the process exit code.
func AnalyzeComparisonResults(results []FoldResult, opts PresentationOptions, presenter ResultPresenter, handler ErrorHandler, out io.Writer) int {
	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *FoldResult
	var firstError error
	successCount := 0
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
			continue
		}
		successCount++
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the fold.\n")
		return handler.HandleError(firstError, 0, out)
	}

	for _, res := range results {
		if res.Err == nil && !agree(res.Result, firstValid.Result) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies produced different tables or structures.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	}
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}
