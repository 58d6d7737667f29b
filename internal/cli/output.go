// # Naming Conventions
//
// Functions in this package follow a naming pattern:
//
//   - Display* write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* return a string without I/O.
//     Examples: [FormatQuietResult], [FormatPairs].
//
//   - Write* write to the filesystem or encode to a writer.
//     Examples: [WriteResultToFile], [WriteJSON].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/ui"
)

// OutputConfig holds output settings for one run.
type OutputConfig struct {
	OutputFile string
	Quiet      bool
	JSON       bool
	// IncludeTable adds the full score table to JSON output.
	IncludeTable bool
}

// WriteResultToFile writes the result in the Vienna-style layout
// ">id / sequence / structure (score)" preceded by comment lines. Missing
// directories are created. An empty path is a no-op.
func WriteResultToFile(res orchestration.FoldResult, opts orchestration.PresentationOptions, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	st := res.Result.Structure
	fmt.Fprintf(file, "# RNA secondary structure (Nussinov)\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Strategy: %s\n", res.Name)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Pairs: %d\n", len(st.Pairs))
	fmt.Fprintf(file, ">%s\n%s\n%s (%d)\n", opts.ID, opts.Sequence, st.Bracket, st.Score)

	return file.Close()
}

// FormatQuietResult is the single line printed in quiet mode.
func FormatQuietResult(res orchestration.FoldResult) string {
	return res.Result.Structure.Bracket
}

// DisplayQuietResult prints only the dot-bracket string.
func DisplayQuietResult(out io.Writer, res orchestration.FoldResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}

// ResultJSON is the --json document.
type ResultJSON struct {
	ID         string   `json:"id"`
	Sequence   string   `json:"sequence"`
	Length     int      `json:"length"`
	Structure  string   `json:"structure"`
	Score      int      `json:"score"`
	Pairs      [][2]int `json:"pairs"`
	Strategy   string   `json:"strategy"`
	DurationMs float64  `json:"duration_ms"`
	Table      [][]int  `json:"table,omitempty"`
}

// NewResultJSON builds the JSON document for a result.
func NewResultJSON(res orchestration.FoldResult, opts orchestration.PresentationOptions, includeTable bool) ResultJSON {
	st := res.Result.Structure
	pairs := make([][2]int, len(st.Pairs))
	for k, p := range st.Pairs {
		pairs[k] = [2]int{p.I, p.J}
	}
	doc := ResultJSON{
		ID:         opts.ID,
		Sequence:   opts.Sequence.String(),
		Length:     opts.Sequence.Len(),
		Structure:  st.Bracket,
		Score:      st.Score,
		Pairs:      pairs,
		Strategy:   res.Name,
		DurationMs: float64(res.Duration.Microseconds()) / 1000,
	}
	if includeTable {
		doc.Table = res.Result.Table.Rows()
	}
	return doc
}

// WriteJSON encodes the result as indented JSON.
func WriteJSON(out io.Writer, res orchestration.FoldResult, opts orchestration.PresentationOptions, includeTable bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(NewResultJSON(res, opts, includeTable))
}

// DisplayResultWithConfig handles quiet, JSON and normal output, then the
// optional file copy.
func DisplayResultWithConfig(out io.Writer, res orchestration.FoldResult, opts orchestration.PresentationOptions, cfg OutputConfig) error {
	switch {
	case cfg.JSON:
		if err := WriteJSON(out, res, opts, cfg.IncludeTable); err != nil {
			return err
		}
	case cfg.Quiet:
		DisplayQuietResult(out, res)
	default:
		DisplayResult(out, res, opts)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(res, opts, cfg); err != nil {
			return err
		}
		if !cfg.Quiet && !cfg.JSON {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
