// Package calibration measures the parallel diagonal threshold that suits
// this machine, caches it in a profile, and runs the length-versus-time
// benchmark.
package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/rnafold/internal/config"
	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
	"github.com/agbru/rnafold/internal/seqio"
	"github.com/agbru/rnafold/internal/ui"
)

// Calibration defaults.
const (
	DefaultCalibrationLength  = 1200
	DefaultCalibrationRepeats = 3
	calibrationSeed           = 0x5eed
)

// Options tunes a calibration run.
type Options struct {
	Length     int
	Repeats    int
	Thresholds []int
	// Observer, when set, follows each fill; the index is the position of
	// the threshold in Thresholds.
	Observer progress.ProgressObserver
}

func (o Options) withDefaults() Options {
	if o.Length <= 0 {
		o.Length = DefaultCalibrationLength
	}
	if o.Repeats <= 0 {
		o.Repeats = DefaultCalibrationRepeats
	}
	if len(o.Thresholds) == 0 {
		o.Thresholds = GenerateParallelThresholds()
	}
	return o
}

// ThresholdResult is the best timing of one candidate threshold.
type ThresholdResult struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Calibrate fills the table of one fixed random sequence once per candidate
// threshold, keeping the best of Repeats timings, and returns the fastest
// threshold. Threshold 0 is the sequential fill.
func Calibrate(ctx context.Context, opts Options, base nussinov.Options) (int, []ThresholdResult, error) {
	opts = opts.withDefaults()
	seq := seqio.Random(opts.Length, seqio.NewRand(calibrationSeed))
	subject := progress.NewProgressSubject()
	if opts.Observer != nil {
		subject.Register(opts.Observer)
	}

	results := make([]ThresholdResult, 0, len(opts.Thresholds))
	best, bestDur := 0, time.Duration(-1)
	for idx, th := range opts.Thresholds {
		o := base
		o.ParallelThreshold = th
		var report progress.ProgressCallback
		if opts.Observer != nil {
			report = subject.Freeze(idx)
		}
		res := ThresholdResult{Threshold: th, Duration: -1}
		for range opts.Repeats {
			start := time.Now()
			_, err := nussinov.BuildScoreTableContext(ctx, seq, o, report)
			d := time.Since(start)
			if err != nil {
				res.Err = err
				break
			}
			if res.Duration < 0 || d < res.Duration {
				res.Duration = d
			}
		}
		if ctx.Err() != nil {
			return 0, results, ctx.Err()
		}
		results = append(results, res)
		if res.Err == nil && (bestDur < 0 || res.Duration < bestDur) {
			best, bestDur = th, res.Duration
		}
	}
	if bestDur < 0 {
		return 0, results, fmt.Errorf("no threshold completed")
	}
	return best, results, nil
}

// RunCalibration is the --calibrate mode: it calibrates, prints the
// summary and saves the profile.
func RunCalibration(ctx context.Context, cfg config.AppConfig, opts Options, out io.Writer, logger zerolog.Logger) int {
	opts = opts.withDefaults()
	if opts.Observer == nil {
		opts.Observer = progress.NewLoggingObserver(logger, 0.25)
	}
	fmt.Fprintf(out, "--- Calibration Mode: Finding the Optimal Parallel Threshold ---\n")
	fmt.Fprintf(out, "Timing %d thresholds on a %d nt random sequence...\n", len(opts.Thresholds), opts.Length)
	start := time.Now()
	best, results, err := Calibrate(ctx, opts, cfg.ToFoldOptions())
	if err != nil {
		fmt.Fprintf(out, "%sCalibration failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		if apperrors.IsContextError(err) {
			return apperrors.ExitCodeFor(err)
		}
		return apperrors.ExitErrorGeneric
	}
	elapsed := time.Since(start)
	printCalibrationResults(out, results, best)

	profile := NewProfile()
	profile.OptimalParallelThreshold = best
	profile.CalibrationLength = opts.Length
	profile.CalibrationTime = elapsed.Round(time.Millisecond).String()

	path := cfg.CalibrationProfile
	if path == "" {
		path = GetDefaultProfilePath()
	}
	if err := profile.SaveProfile(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not save calibration profile")
	} else {
		logger.Debug().Str("path", path).Int("threshold", best).Msg("calibration profile saved")
		fmt.Fprintf(out, "Profile saved to %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
	}
	fmt.Fprintf(out, "\n%sRecommended:%s --threshold %s%d%s\n",
		ui.ColorGreen(), ui.ColorReset(), ui.ColorYellow(), best, ui.ColorReset())
	return apperrors.ExitSuccess
}

// LoadCachedCalibration applies a valid, fresh profile to cfg when no
// threshold was given. It reports whether the profile was used.
func LoadCachedCalibration(cfg config.AppConfig, path string, logger zerolog.Logger) (config.AppConfig, bool) {
	if cfg.Threshold != 0 {
		return cfg, false
	}
	if path == "" {
		path = GetDefaultProfilePath()
	}
	profile, loaded := LoadOrCreateProfile(path)
	if !loaded {
		return cfg, false
	}
	if !profile.IsValid() || profile.IsStale(DefaultMaxProfileAge) {
		logger.Debug().Str("path", path).Msg("ignoring calibration profile from other hardware or too old")
		return cfg, false
	}
	cfg.Threshold = profile.OptimalParallelThreshold
	logger.Debug().Int("threshold", cfg.Threshold).Msg("using cached calibration")
	return cfg, true
}
