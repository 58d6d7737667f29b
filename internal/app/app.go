// Package app wires configuration, input, orchestration and presentation
// into the rnafold command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/agbru/rnafold/internal/calibration"
	"github.com/agbru/rnafold/internal/cli"
	"github.com/agbru/rnafold/internal/config"
	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/logging"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/telemetry"
	"github.com/agbru/rnafold/internal/tui"
	"github.com/agbru/rnafold/internal/ui"
)

const traceFlushTimeout = 5 * time.Second

// Application is one rnafold invocation.
type Application struct {
	Config    config.AppConfig
	Factory   nussinov.FolderFactory
	ErrWriter io.Writer
	// In feeds the REPL and "--file -". It defaults to os.Stdin.
	In     io.Reader
	Logger zerolog.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the default strategy registry.
func WithFactory(f nussinov.FolderFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput replaces os.Stdin.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New parses args (program name first) into an Application. Parameters
// missing from the command line come from a cached calibration profile when
// one fits this machine, or from CPU-count heuristics otherwise.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = nussinov.NewDefaultFactory()
	}

	programName := "rnafold"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Logger = newLogger(errWriter, cfg.Verbose)

	if withProfile, loaded := calibration.LoadCachedCalibration(cfg, cfg.CalibrationProfile, app.Logger); loaded {
		cfg = withProfile
	} else {
		cfg = config.ApplyAdaptiveThresholds(cfg)
	}
	app.Config = cfg
	return app, nil
}

// newLogger logs warnings and errors to w, and debug events too when
// verbose.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return logging.NewLogger(w, "rnafold").Zerolog().Level(level)
}

// Run executes the selected mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	ui.InitTheme(a.Config.NoColor)
	if a.Config.Trace {
		defer a.startTracing()()
	}

	switch {
	case a.Config.Calibrate:
		return calibration.RunCalibration(ctx, a.Config, calibration.Options{}, out, a.Logger)
	case a.Config.REPL:
		return a.runREPL(out)
	case a.Config.Benchmark:
		return a.runBenchmark(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	}
	return a.runFold(ctx, out)
}

// startTracing installs the span exporter on ErrWriter and returns the
// function that flushes it.
func (a *Application) startTracing() func() {
	tp, err := telemetry.NewTracerProvider(a.ErrWriter, "rnafold", Version)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("tracing disabled")
		return func() {}
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), traceFlushTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			a.Logger.Warn().Err(err).Msg("flushing spans")
		}
	}
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Options:     a.Config.ToFoldOptions(),
		ShowTable:   a.Config.ShowTable,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	ctx, stop := withSignals(ctx)
	defer stop()

	rec, err := a.readInput(ctx)
	if err != nil {
		return a.reportSetupError(err)
	}
	folders := orchestration.GetFoldersToRun(a.Config.Algo, a.Factory)
	return tui.Run(ctx, folders, rec, a.Config, Version)
}

// reportSetupError prints an error raised before any fold ran.
func (a *Application) reportSetupError(err error) int {
	fmt.Fprintf(a.ErrWriter, "%sError:%s %v\n", ui.ColorRed(), ui.ColorReset(), err)
	return apperrors.ExitCodeFor(err)
}

// IsHelpError reports whether err comes from -h or --help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
