package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes one flag for completion scripts. Every generator
// reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // without "--"
	Short     string   // without "-"
	Help      string
	Values    []string // static suggestions
	ValueName string   // value label; empty for booleans
	IsFile    bool
	IsAlgo    bool // values come from the strategy list
	Section   string
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "General"},
	{Long: "version", Help: "Show version information", Section: "General"},
	{Long: "sequence", Short: "s", Help: "RNA sequence to fold", ValueName: "sequence", Section: "Input"},
	{Long: "file", Short: "f", Help: "FASTA or raw sequence file", IsFile: true, ValueName: "file", Section: "Input"},
	{Long: "random", Help: "Fold a random sequence of this length", Values: []string{"100", "500", "1000", "2000"}, ValueName: "length", Section: "Input"},
	{Long: "seed", Help: "Seed for --random", ValueName: "seed", Section: "Input"},
	{Long: "algo", Help: "Fill strategy", IsAlgo: true, ValueName: "strategy", Section: "Folding"},
	{Long: "match", Help: "Score of a complementary pair", ValueName: "score", Section: "Folding"},
	{Long: "mismatch", Help: "Score of a non-complementary pair", ValueName: "score", Section: "Folding"},
	{Long: "min-loop", Help: "Minimum hairpin loop length", Values: []string{"0", "1", "3", "4"}, ValueName: "length", Section: "Folding"},
	{Long: "threshold", Help: "Parallel diagonal threshold in cells", Values: []string{"128", "256", "512", "1024"}, ValueName: "cells", Section: "Folding"},
	{Long: "timeout", Help: "Maximum fold time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Folding"},
	{Long: "memory-limit", Help: "Maximum table memory", Values: []string{"512M", "1G", "2G", "8G"}, ValueName: "size", Section: "Folding"},
	{Long: "gc", Help: "GC control during fills", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode", Section: "Folding"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file", Section: "Output"},
	{Long: "quiet", Short: "q", Help: "Print only the structure", Section: "Output"},
	{Long: "verbose", Short: "v", Help: "Print the pair list", Section: "Output"},
	{Long: "details", Short: "d", Help: "Print timing and memory details", Section: "Output"},
	{Long: "table", Help: "Render the score table", Section: "Output"},
	{Long: "json", Help: "Print the result as JSON", Section: "Output"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output"},
	{Long: "trace", Help: "Write fold spans to stderr", Section: "Output"},
	{Long: "benchmark", Help: "Benchmark random sequences", Section: "Benchmark"},
	{Long: "bench-lengths", Help: "Comma-separated benchmark lengths", ValueName: "lengths", Section: "Benchmark"},
	{Long: "metrics-file", Help: "Prometheus metrics output", IsFile: true, ValueName: "file", Section: "Benchmark"},
	{Long: "calibrate", Help: "Calibrate the parallel threshold", Section: "Benchmark"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file", Section: "Benchmark"},
	{Long: "tui", Help: "Interactive dashboard", Section: "Modes"},
	{Long: "repl", Help: "Interactive prompt", Section: "Modes"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Modes"},
}

const progName = "rnafold"

// GenerateCompletion writes a completion script for shell. algorithms are
// the registered strategy names; "all" is appended.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algos := append(append([]string(nil), algorithms...), "all")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(algos)
	case "zsh":
		script = zshCompletion(algos)
	case "fish":
		script = fishCompletion(algos)
	case "powershell", "ps":
		script = powerShellCompletion(algos)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func (f FlagCompletion) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

func (f FlagCompletion) values(algos []string) []string {
	if f.IsAlgo {
		return algos
	}
	return f.Values
}

func bashCompletion(algos []string) string {
	var opts, files []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, f.spellings()...)
		if f.IsFile {
			files = append(files, f.spellings()...)
			continue
		}
		if vals := f.values(algos); len(vals) > 0 {
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(f.spellings(), "|"), strings.Join(vals, " "))
		}
	}
	fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
		strings.Join(files, "|"))

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"

    case "${prev}" in
%[3]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, progName, strings.Join(opts, " "), cases.String())
}

func zshCompletion(algos []string) string {
	entries := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		suffix := ""
		switch vals := f.values(algos); {
		case f.IsFile:
			suffix = fmt.Sprintf(":%s:_files", f.ValueName)
		case len(vals) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(vals, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		if f.Short != "" {
			entries = append(entries, fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
				f.Short, f.Long, f.Short, f.Long, f.Help, suffix))
		} else {
			entries = append(entries, fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix))
		}
	}
	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Place in a directory listed in $fpath

_%[1]s() {
    _arguments -s \
%[2]s
}

_%[1]s "$@"
`, progName, strings.Join(entries, " \\\n"))
}

func fishCompletion(algos []string) string {
	lines := []string{
		"# Fish completion script for " + progName,
		"# Add this to ~/.config/fish/completions/" + progName + ".fish",
		"",
		"complete -c " + progName + " -f",
	}
	section := ""
	for _, f := range flagRegistry {
		if f.Section != section {
			section = f.Section
			lines = append(lines, "", "# "+section)
		}
		parts := []string{"complete -c " + progName}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch vals := f.values(algos); {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(vals) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(vals, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(algos []string) string {
	var options, switches []string
	for _, f := range flagRegistry {
		for _, s := range f.spellings() {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", s, f.Help))
		}
		vals := f.values(algos)
		if len(vals) == 0 || f.IsFile {
			continue
		}
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName '%[1]s' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[2]s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%[3]s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, progName, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
