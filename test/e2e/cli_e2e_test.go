package e2e

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E builds rnafold and checks its output and exit codes.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "rnafold"
	if runtime.GOOS == "windows" {
		binName = "rnafold.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs in test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/rnafold")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build rnafold: %v", err)
	}

	profile := filepath.Join(tmpDir, "profile.json")
	fasta := filepath.Join(tmpDir, "hairpin.fa")
	if err := os.WriteFile(fasta, []byte(">hairpin\nGGGAAACCC\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantOut  string // case-insensitive substring
		wantCode int
	}{
		{
			name:    "Basic Fold",
			args:    []string{"-s", "GGGAAACCC"},
			wantOut: "Structure: (((...)))",
		},
		{
			name:    "Help",
			args:    []string{"--help"},
			wantOut: "usage",
		},
		{
			name:    "All Strategies Comparison",
			args:    []string{"--random", "120", "--seed", "7", "--algo", "all"},
			wantOut: "All valid results are consistent",
		},
		{
			name:    "Quiet Mode",
			args:    []string{"-q", "-s", "AUGC"},
			wantOut: "()()",
		},
		{
			name:    "FASTA File",
			args:    []string{"-q", "-f", fasta},
			wantOut: "(((...)))",
		},
		{
			name:    "Stdin",
			args:    []string{"-q", "-f", "-"},
			stdin:   ">x\nGGGAAACCC\n",
			wantOut: "(((...)))",
		},
		{
			name:    "JSON",
			args:    []string{"--json", "-s", "GGGAAACCC"},
			wantOut: `"structure": "(((...)))"`,
		},
		{
			name:    "Score Table",
			args:    []string{"--table", "--algo", "sequential", "-s", "GGGAAACCC"},
			wantOut: "G G G A A A C C C",
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"--algo", "sequential", "--random", "2000", "--timeout", "1ms"},
			wantCode: 2,
		},
		{
			name:     "Timeout In Comparison",
			args:     []string{"--random", "2000", "--timeout", "1ms"},
			wantOut:  "Failure",
			wantCode: 2,
		},
		{
			name:    "Trace",
			args:    []string{"-q", "--trace", "-s", "GGGAAACCC"},
			wantOut: `"Name": "ExecuteFolds"`,
		},
		{
			name:     "Memory Limit",
			args:     []string{"--random", "500", "--memory-limit", "1K"},
			wantOut:  "exceeds limit",
			wantCode: 4,
		},
		{
			name:     "Unknown Strategy",
			args:     []string{"--algo", "zuker", "-s", "GC"},
			wantCode: 4,
		},
		{
			name:     "No Input",
			args:     []string{},
			wantOut:  "no input",
			wantCode: 4,
		},
		{
			name:    "Benchmark",
			args:    []string{"--benchmark", "--bench-lengths", "20,40", "--algo", "diagonal"},
			wantOut: "Sequence Length: 40 |",
		},
		{
			name:    "Completion",
			args:    []string{"--completion", "bash"},
			wantOut: "rnafold",
		},
		{
			name:    "Version Flag",
			args:    []string{"--version"},
			wantOut: "rnafold",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--calibration-profile", profile}, tt.args...)
			if tt.name == "Help" || tt.name == "Version Flag" {
				args = tt.args
			}
			cmd := exec.Command(binPath, args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			if tt.stdin != "" {
				cmd.Stdin = strings.NewReader(tt.stdin)
			}
			output, err := cmd.CombinedOutput()
			outStr := string(output)

			code := 0
			if err != nil {
				var exitErr *exec.ExitError
				if !errors.As(err, &exitErr) {
					t.Fatalf("running rnafold: %v", err)
				}
				code = exitErr.ExitCode()
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nOutput: %s", code, tt.wantCode, outStr)
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}
