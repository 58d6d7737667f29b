package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/rnafold/internal/config"
	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/orchestration"
	"github.com/agbru/rnafold/internal/ui"
)

// PrintExecutionConfig shows the input and folding parameters.
func PrintExecutionConfig(cfg config.AppConfig, id string, seq nussinov.Sequence, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Folding %s%s%s (%s%d%s nt) with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), id, ui.ColorReset(),
		ui.ColorCyan(), seq.Len(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Scoring: match=%s%d%s, mismatch=%s%d%s, minimum loop=%s%d%s.\n",
		ui.ColorCyan(), cfg.Match, ui.ColorReset(),
		ui.ColorCyan(), cfg.Mismatch, ui.ColorReset(),
		ui.ColorCyan(), cfg.MinLoop, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, parallel threshold %s%d%s cells.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		ui.ColorCyan(), cfg.Threshold, ui.ColorReset())
}

// PrintExecutionMode announces a single run or a comparison.
func PrintExecutionMode(folders []nussinov.Folder, out io.Writer) {
	mode := "Parallel comparison of all strategies"
	if len(folders) == 1 {
		mode = fmt.Sprintf("Single fold with the %s%s%s strategy", ui.ColorGreen(), folders[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", mode)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// FormatPairs lists pairs as "(i, j)" separated by spaces.
func FormatPairs(p nussinov.Pairing) string {
	if len(p) == 0 {
		return "none"
	}
	parts := make([]string, len(p))
	for k, pr := range p {
		parts[k] = pr.String()
	}
	return strings.Join(parts, " ")
}

// DisplayResult prints the retained structure. Verbose adds the pair list,
// Details adds timing and table footprint, ShowTable adds the score table.
func DisplayResult(out io.Writer, res orchestration.FoldResult, opts orchestration.PresentationOptions) {
	st := res.Result.Structure
	fmt.Fprintf(out, "\n--- Result ---\n")
	if opts.ID != "" {
		fmt.Fprintf(out, "Sequence:  %s%s%s (%d nt)\n", ui.ColorMagenta(), opts.ID, ui.ColorReset(), opts.Sequence.Len())
	}
	fmt.Fprintf(out, "           %s\n", opts.Sequence)
	fmt.Fprintf(out, "Structure: %s%s%s\n", ui.ColorGreen(), st.Bracket, ui.ColorReset())
	fmt.Fprintf(out, "Score:     %s%d%s (%d pairs)\n", ui.ColorCyan(), st.Score, ui.ColorReset(), len(st.Pairs))

	if opts.Verbose {
		fmt.Fprintf(out, "Pairs:     %s\n", FormatPairs(st.Pairs))
	}
	if opts.Details {
		fmt.Fprintf(out, "\n%sDetails%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "  Strategy:        %s\n", res.Name)
		fmt.Fprintf(out, "  Fold time:       %s\n", format.FormatExecutionDuration(res.Duration))
		fmt.Fprintf(out, "  Table footprint: %s\n", format.FormatBytes(res.Result.Table.Bytes()))
		fmt.Fprintf(out, "  Traceback cells: %s\n", format.FormatInt(len(st.Path)))
	}
	if opts.ShowTable {
		fmt.Fprintf(out, "\n%s", RenderTable(opts.Sequence, res.Result.Table, st, DefaultTableWindow))
	}
}
