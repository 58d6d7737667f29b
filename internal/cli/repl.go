package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
	"github.com/agbru/rnafold/internal/seqio"
	"github.com/agbru/rnafold/internal/ui"
)

// REPLConfig holds the session settings.
type REPLConfig struct {
	DefaultAlgo string
	Timeout     time.Duration
	Options     nussinov.Options
	ShowTable   bool
}

// REPL is an interactive folding session.
type REPL struct {
	config      REPLConfig
	registry    map[string]nussinov.Folder
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over the given strategies. With no default, or
// "all", the first strategy by name is used.
func NewREPL(registry map[string]nussinov.Folder, config REPLConfig) *REPL {
	r := &REPL{config: config, registry: registry, in: os.Stdin, out: os.Stdout}
	r.currentAlgo = config.DefaultAlgo
	if _, ok := registry[r.currentAlgo]; !ok {
		if names := r.names(); len(names) > 0 {
			r.currentAlgo = names[0]
		}
	}
	return r
}

// SetInput replaces stdin.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput replaces stdout.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until "exit" or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rna> "+ui.ColorReset())
		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		eof := errors.Is(err, io.EOF)
		if line := strings.TrimSpace(input); line != "" {
			if !r.processCommand(line) {
				return
			}
		}
		if eof {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %s🧬 RNA Folding (Nussinov) - Interactive Mode%s   %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmds := [][2]string{
		{"fold <seq>", "Fold a sequence with the current strategy"},
		{"compare <seq>", "Fold with every strategy and check they agree"},
		{"algo <name>", "Change strategy (" + strings.Join(r.names(), ", ") + ")"},
		{"minloop <k>", "Set the minimum hairpin loop length"},
		{"table", "Toggle the score table view"},
		{"list", "List strategies"},
		{"status", "Show the session settings"},
		{"help", "Show this help"},
		{"exit / quit", "Leave interactive mode"},
	}
	for _, c := range cmds {
		fmt.Fprintf(r.out, "  %s%-14s%s - %s\n", ui.ColorYellow(), c[0], ui.ColorReset(), c[1])
	}
	fmt.Fprintf(r.out, "A bare sequence is folded directly.\n")
}

func (r *REPL) names() []string {
	names := make([]string, 0, len(r.registry))
	for name := range r.registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// looksLikeSequence accepts letters only, so commands with arguments and
// numbers are never folded by accident.
func looksLikeSequence(s string) bool {
	return s != "" && strings.IndexFunc(s, func(c rune) bool { return !unicode.IsLetter(c) }) < 0
}

// processCommand runs one command. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "fold", "f":
		if seq, ok := r.sequenceArg(cmd, args); ok {
			r.fold(seq)
		}
	case "compare", "cmp":
		if seq, ok := r.sequenceArg(cmd, args); ok {
			r.compare(seq)
		}
	case "algo", "a":
		r.cmdAlgo(args)
	case "minloop", "ml":
		r.cmdMinLoop(args)
	case "table", "t":
		r.config.ShowTable = !r.config.ShowTable
		fmt.Fprintf(r.out, "Score table view: %s%s%s\n", ui.ColorGreen(), onOff(r.config.ShowTable), ui.ColorReset())
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if len(parts) == 1 && looksLikeSequence(parts[0]) {
			r.fold(nussinov.NewSequence(seqio.Normalize(parts[0])))
			return true
		}
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
	}
	return true
}

func (r *REPL) sequenceArg(cmd string, args []string) (nussinov.Sequence, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <sequence>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return nil, false
	}
	return nussinov.NewSequence(seqio.Normalize(strings.Join(args, ""))), true
}

func (r *REPL) fold(seq nussinov.Sequence) {
	f, ok := r.registry[r.currentAlgo]
	if !ok {
		fmt.Fprintf(r.out, "%sStrategy not found: %s%s\n", ui.ColorRed(), r.currentAlgo, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	progressChan := make(chan progress.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	res, err := f.Fold(ctx, progressChan, 0, seq, r.config.Options)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	st := res.Structure
	fmt.Fprintf(r.out, "\n  %s\n  %s%s%s\n", seq, ui.ColorGreen(), st.Bracket, ui.ColorReset())
	fmt.Fprintf(r.out, "  Score: %s%d%s   Pairs: %d   Time: %s\n",
		ui.ColorCyan(), st.Score, ui.ColorReset(), len(st.Pairs), format.FormatExecutionDuration(duration))
	if r.config.ShowTable {
		fmt.Fprintf(r.out, "\n%s", RenderTable(seq, res.Table, st, DefaultTableWindow))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) compare(seq nussinov.Sequence) {
	fmt.Fprintf(r.out, "\n%sComparison for %d nt:%s\n", ui.ColorBold(), seq.Len(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var first *nussinov.Result
	for _, name := range r.names() {
		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
		start := time.Now()
		res, err := r.registry[name].Fold(ctx, nil, 0, seq, r.config.Options)
		duration := time.Since(start)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-12s%s: %sError - %v%s\n",
				ui.ColorYellow(), name, ui.ColorReset(), ui.ColorRed(), err, ui.ColorReset())
			continue
		}
		if first == nil {
			first = res
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if res.Structure.Bracket != first.Structure.Bracket || !res.Table.Equal(first.Table) {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-12s%s: %s%10s%s score %d %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(duration), ui.ColorReset(),
			res.Structure.Score, status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.names(), ", "))
		return
	}
	name := strings.ToLower(args[0])
	f, ok := r.registry[name]
	if !ok {
		fmt.Fprintf(r.out, "%sUnknown strategy: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available strategies: %s\n", strings.Join(r.names(), ", "))
		return
	}
	r.currentAlgo = name
	fmt.Fprintf(r.out, "Strategy changed to: %s%s%s\n", ui.ColorGreen(), f.Name(), ui.ColorReset())
}

func (r *REPL) cmdMinLoop(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: minloop <k>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	k, err := strconv.Atoi(args[0])
	if err != nil || k < 0 {
		fmt.Fprintf(r.out, "%sInvalid value: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return
	}
	r.config.Options.MinLoopLength = k
	fmt.Fprintf(r.out, "Minimum loop length: %s%d%s\n", ui.ColorGreen(), k, ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable strategies:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range r.names() {
		marker := "  "
		if name == r.currentAlgo {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), name, ui.ColorReset(), r.registry[name].Name())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	o := r.config.Options
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Strategy:      %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:       %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Scoring:       %smatch=%d mismatch=%d%s\n", ui.ColorCyan(), o.MatchScore, o.MismatchScore, ui.ColorReset())
	fmt.Fprintf(r.out, "  Minimum loop:  %s%d%s\n", ui.ColorCyan(), o.MinLoopLength, ui.ColorReset())
	fmt.Fprintf(r.out, "  Score table:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.ShowTable), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
