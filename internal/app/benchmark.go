package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/rnafold/internal/calibration"
	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/metrics"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/seqio"
	"github.com/agbru/rnafold/internal/ui"
)

// runBenchmark times random folds of increasing length for each selected
// strategy and optionally exports the measurements.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := withSignals(ctx)
	defer stopSignals()

	lengths, err := a.Config.ParseBenchLengths()
	if err != nil {
		return a.reportSetupError(err)
	}

	rec := metrics.NewFoldMetrics()
	rng := seqio.NewRand(a.Config.Seed)
	code := apperrors.ExitSuccess
	for _, folder := range orchestration.GetFoldersToRun(a.Config.Algo, a.Factory) {
		fmt.Fprintf(out, "\n--- Benchmark: %s%s%s ---\n", ui.ColorGreen(), folder.Name(), ui.ColorReset())
		if _, err := calibration.RunBenchmark(ctx, folder, lengths, a.Config.ToFoldOptions(), rng, out, rec); err != nil {
			fmt.Fprintf(a.ErrWriter, "%sBenchmark failed:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
			code = apperrors.ExitCodeFor(err)
			break
		}
	}

	if a.Config.MetricsFile != "" {
		if err := rec.WriteTextfile(a.Config.MetricsFile); err != nil {
			err = apperrors.WrapError(err, "writing metrics to %s", a.Config.MetricsFile)
			a.Logger.Error().Err(err).Msg("metrics export failed")
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			if code == apperrors.ExitSuccess {
				code = apperrors.ExitErrorGeneric
			}
		} else {
			fmt.Fprintf(out, "\nMetrics written to %s%s%s\n", ui.ColorCyan(), a.Config.MetricsFile, ui.ColorReset())
		}
	}
	return code
}
