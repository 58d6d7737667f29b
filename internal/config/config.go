// Package config parses the rnafold command line into an AppConfig and
// layers RNAFOLD_* environment overrides beneath explicit flags.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/nussinov"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RNAFOLD_"

// Defaults.
const (
	DefaultAlgo         = "all"
	DefaultTimeout      = 5 * time.Minute
	DefaultGCMode       = "auto"
	DefaultBenchLengths = "100,500,1000,2000"
)

// AppConfig is the fully resolved configuration of one run.
type AppConfig struct {
	// Input, exactly one of these for fold runs.
	Sequence string
	File     string
	Random   int
	Seed     uint64

	// Folding parameters.
	Algo      string
	Match     int
	Mismatch  int
	MinLoop   int
	Threshold int
	Timeout   time.Duration

	// Output.
	OutputFile string
	Quiet      bool
	Verbose    bool
	Details    bool
	ShowTable  bool
	JSON       bool
	NoColor    bool
	Trace      bool

	// Benchmark and calibration.
	Benchmark          bool
	BenchLengths       string
	MetricsFile        string
	Calibrate          bool
	CalibrationProfile string

	// Resources.
	MemoryLimit string
	GCMode      string

	// Modes.
	TUI        bool
	REPL       bool
	Completion string
	Version    bool
}

// ToFoldOptions converts the folding parameters.
func (c AppConfig) ToFoldOptions() nussinov.Options {
	return nussinov.Options{
		MatchScore:        c.Match,
		MismatchScore:     c.Mismatch,
		MinLoopLength:     c.MinLoop,
		ParallelThreshold: c.Threshold,
	}
}

// HasInput reports whether a sequence source was given.
func (c AppConfig) HasInput() bool {
	return c.Sequence != "" || c.File != "" || c.Random > 0
}

// NeedsInput reports whether the selected mode folds a user sequence.
func (c AppConfig) NeedsInput() bool {
	return !c.Benchmark && !c.Calibrate && !c.REPL && c.Completion == "" && !c.Version
}

// ParseBenchLengths parses the comma-separated --bench-lengths list.
func (c AppConfig) ParseBenchLengths() ([]int, error) {
	var lengths []int
	for _, field := range strings.Split(c.BenchLengths, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return nil, apperrors.NewConfigError("invalid benchmark length %q", field)
		}
		lengths = append(lengths, n)
	}
	if len(lengths) == 0 {
		return nil, apperrors.NewConfigError("--bench-lengths is empty")
	}
	return lengths, nil
}

// Validate checks the resolved configuration. availableAlgos lists the
// registered strategy names.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unknown algorithm %q (available: all, %s)", c.Algo, strings.Join(availableAlgos, ", "))
	}
	if c.MinLoop < 0 {
		return apperrors.NewConfigError("--min-loop must be >= 0, got %d", c.MinLoop)
	}
	if c.Threshold < 0 {
		return apperrors.NewConfigError("--threshold must be >= 0, got %d", c.Threshold)
	}
	if c.Random < 0 {
		return apperrors.NewConfigError("--random must be >= 0, got %d", c.Random)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	switch c.GCMode {
	case "auto", "aggressive", "disabled":
	default:
		return apperrors.NewConfigError("--gc must be auto, aggressive or disabled, got %q", c.GCMode)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose are mutually exclusive")
	}
	sources := 0
	for _, set := range []bool{c.Sequence != "", c.File != "", c.Random > 0} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return apperrors.NewConfigError("give only one of --sequence, --file and --random")
	}
	if c.NeedsInput() && sources == 0 {
		return apperrors.NewConfigError("no input: use --sequence, --file, --random or --repl")
	}
	if c.Benchmark {
		if _, err := c.ParseBenchLengths(); err != nil {
			return err
		}
	}
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig,
// applies environment overrides for unset flags and validates the result.
// It returns flag.ErrHelp when -h or --help was given.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	var cfg AppConfig
	fs.StringVar(&cfg.Sequence, "sequence", "", "RNA sequence to fold.")
	fs.StringVar(&cfg.Sequence, "s", "", "Shorthand for --sequence.")
	fs.StringVar(&cfg.File, "file", "", "FASTA or raw sequence file ('-' for stdin).")
	fs.StringVar(&cfg.File, "f", "", "Shorthand for --file.")
	fs.IntVar(&cfg.Random, "random", 0, "Fold a random sequence of this length.")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Seed for --random (0 picks one).")
	fs.StringVar(&cfg.Algo, "algo", DefaultAlgo, fmt.Sprintf("Fill strategy: all, %s.", strings.Join(availableAlgos, ", ")))
	fs.IntVar(&cfg.Match, "match", nussinov.DefaultMatchScore, "Score of a complementary pair.")
	fs.IntVar(&cfg.Mismatch, "mismatch", nussinov.DefaultMismatchScore, "Score of a non-complementary pair.")
	fs.IntVar(&cfg.MinLoop, "min-loop", nussinov.DefaultMinLoopLength, "Positions i, j pair only when j-i exceeds this.")
	fs.IntVar(&cfg.Threshold, "threshold", 0, "Diagonal cells above which the fill runs in parallel (0 = adaptive).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum fold time.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the dot-bracket string.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Print the pair list.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.Details, "details", false, "Print timing and memory details.")
	fs.BoolVar(&cfg.Details, "d", false, "Shorthand for --details.")
	fs.BoolVar(&cfg.ShowTable, "table", false, "Render the score table with the traceback highlighted.")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the result as JSON.")
	fs.BoolVar(&cfg.Benchmark, "benchmark", false, "Time folds of random sequences of increasing length.")
	fs.StringVar(&cfg.BenchLengths, "bench-lengths", DefaultBenchLengths, "Comma-separated benchmark lengths.")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", "", "Write benchmark metrics in Prometheus text format.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Measure the best --threshold for this machine.")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile path.")
	fs.StringVar(&cfg.MemoryLimit, "memory-limit", "", "Refuse folds whose tables exceed this size (e.g. 2G).")
	fs.StringVar(&cfg.GCMode, "gc", DefaultGCMode, "GC control during fills: auto, aggressive, disabled.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Interactive dashboard.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Interactive prompt.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Trace, "trace", false, "Write OpenTelemetry spans of each fold to stderr.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script: bash, zsh, fish, powershell.")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version.")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\nPredict RNA secondary structure (Nussinov).\n\nOptions:\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&cfg, fs)

	// A bare positional argument is the sequence.
	if fs.NArg() > 0 && !isFlagSetAny(fs, "sequence", "s") {
		cfg.Sequence = fs.Arg(0)
	}

	if err := cfg.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}
