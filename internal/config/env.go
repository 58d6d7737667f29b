package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// isFlagSet reports whether the flag was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny covers short and long aliases.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride maps one RNAFOLD_ key to the flags it stands in for.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// intField parses an integer override into the field selected by field.
func intField(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

// envOverrides is the declarative table of environment overrides.
var envOverrides = []envOverride{
	{"SEQUENCE", []string{"sequence", "s"}, func(c *AppConfig, v string) { c.Sequence = v }},
	{"FILE", []string{"file", "f"}, func(c *AppConfig, v string) { c.File = v }},
	{"RANDOM", []string{"random"}, intField(func(c *AppConfig) *int { return &c.Random })},
	{"SEED", []string{"seed"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}},
	{"MATCH", []string{"match"}, intField(func(c *AppConfig) *int { return &c.Match })},
	{"MISMATCH", []string{"mismatch"}, intField(func(c *AppConfig) *int { return &c.Mismatch })},
	{"MIN_LOOP", []string{"min-loop"}, intField(func(c *AppConfig) *int { return &c.MinLoop })},
	{"THRESHOLD", []string{"threshold"}, intField(func(c *AppConfig) *int { return &c.Threshold })},

	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	{"ALGO", []string{"algo"}, func(c *AppConfig, v string) { c.Algo = v }},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) { c.OutputFile = v }},
	{"BENCH_LENGTHS", []string{"bench-lengths"}, func(c *AppConfig, v string) { c.BenchLengths = v }},
	{"METRICS_FILE", []string{"metrics-file"}, func(c *AppConfig, v string) { c.MetricsFile = v }},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) { c.CalibrationProfile = v }},
	{"MEMORY_LIMIT", []string{"memory-limit"}, func(c *AppConfig, v string) { c.MemoryLimit = v }},
	{"GC", []string{"gc"}, func(c *AppConfig, v string) { c.GCMode = v }},

	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) { c.Verbose = parseBoolEnv(v, c.Verbose) }},
	{"DETAILS", []string{"details", "d"}, func(c *AppConfig, v string) { c.Details = parseBoolEnv(v, c.Details) }},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) { c.Quiet = parseBoolEnv(v, c.Quiet) }},
	{"TABLE", []string{"table"}, func(c *AppConfig, v string) { c.ShowTable = parseBoolEnv(v, c.ShowTable) }},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) { c.JSON = parseBoolEnv(v, c.JSON) }},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) { c.TUI = parseBoolEnv(v, c.TUI) }},
	{"TRACE", []string{"trace"}, func(c *AppConfig, v string) { c.Trace = parseBoolEnv(v, c.Trace) }},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) { c.NoColor = parseBoolEnv(v, c.NoColor) }},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides fills in RNAFOLD_* values for flags not given on the
// command line: flags > environment > defaults.
func applyEnvOverrides(cfg *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(cfg, val)
		}
	}
}
