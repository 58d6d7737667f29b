package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/rnafold/internal/errors"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
)

type mockPresenter struct {
	tableCalls  int
	presented   *FoldResult
	handledWith error
}

func (m *mockPresenter) PresentComparisonTable([]FoldResult, io.Writer) { m.tableCalls++ }
func (m *mockPresenter) PresentResult(r FoldResult, _ PresentationOptions, _ io.Writer) {
	m.presented = &r
}
func (m *mockPresenter) HandleError(err error, _ time.Duration, _ io.Writer) int {
	m.handledWith = err
	return apperrors.ExitCodeFor(err)
}

// stubFolder returns a fixed result or error.
type stubFolder struct {
	name string
	res  *nussinov.Result
	err  error
}

func (s stubFolder) Name() string { return s.name }
func (s stubFolder) Fold(_ context.Context, ch chan<- progress.ProgressUpdate, idx int, _ nussinov.Sequence, _ nussinov.Options) (*nussinov.Result, error) {
	if ch != nil {
		select {
		case ch <- progress.ProgressUpdate{FolderIndex: idx, Value: 1}:
		default:
		}
	}
	return s.res, s.err
}

func mustResult(t *testing.T, seq string) *nussinov.Result {
	t.Helper()
	res, err := nussinov.Fold(nussinov.NewSequence(seq), nussinov.DefaultOptions())
	if err != nil {
		t.Fatalf("Fold(%q): %v", seq, err)
	}
	return res
}

func TestExecuteFoldsRealStrategies(t *testing.T) {
	t.Parallel()
	folders := GetFoldersToRun("all", nussinov.NewDefaultFactory())
	seq := nussinov.NewSequence("GGGAAACCCAUGCAUGCGGAAUUCC")
	opts := nussinov.DefaultOptions()
	opts.ParallelThreshold = 2

	results := ExecuteFolds(context.Background(), folders, seq, opts, NullProgressReporter{}, io.Discard)
	if len(results) != len(folders) {
		t.Fatalf("got %d results, want %d", len(results), len(folders))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("%s: %v", r.Name, r.Err)
		}
		if r.Name != folders[i].Name() {
			t.Errorf("result %d name = %q, want %q", i, r.Name, folders[i].Name())
		}
	}
	if !agree(results[0].Result, results[1].Result) {
		t.Error("sequential and diagonal strategies disagree")
	}
}

func TestExecuteFoldsIsolatesFailures(t *testing.T) {
	t.Parallel()
	folders := []nussinov.Folder{
		stubFolder{name: "ok", res: mustResult(t, "AU")},
		stubFolder{name: "bad", err: errors.New("boom")},
	}
	results := ExecuteFolds(context.Background(), folders, nussinov.NewSequence("AU"), nussinov.DefaultOptions(), NullProgressReporter{}, io.Discard)
	if results[0].Err != nil {
		t.Errorf("ok folder failed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("bad folder should report its error")
	}
}

func TestGetFoldersToRun(t *testing.T) {
	t.Parallel()
	factory := nussinov.NewDefaultFactory()
	tests := []struct {
		algo string
		want int
	}{
		{"all", 2},
		{"sequential", 1},
		{"diagonal", 1},
		{"nope", 0},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			t.Parallel()
			if got := len(GetFoldersToRun(tt.algo, factory)); got != tt.want {
				t.Errorf("GetFoldersToRun(%q) returned %d folders, want %d", tt.algo, got, tt.want)
			}
		})
	}
}

func TestAnalyzeComparisonResults(t *testing.T) {
	t.Parallel()
	same := mustResult(t, "GGGAAACCC")
	other := mustResult(t, "GGGAAAUUU")
	otherSameLen := mustResult(t, "GGGAAAAAA")

	tests := []struct {
		name     string
		results  []FoldResult
		want     int
		presents bool
	}{
		{
			name: "all success",
			results: []FoldResult{
				{Name: "A", Result: same, Duration: 2 * time.Millisecond},
				{Name: "B", Result: same, Duration: time.Millisecond},
			},
			want:     apperrors.ExitSuccess,
			presents: true,
		},
		{
			name: "different structures",
			results: []FoldResult{
				{Name: "A", Result: same},
				{Name: "B", Result: other},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "different scores",
			results: []FoldResult{
				{Name: "A", Result: same},
				{Name: "B", Result: otherSameLen},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "all failure",
			results: []FoldResult{
				{Name: "A", Err: errors.New("fail")},
				{Name: "B", Err: errors.New("fail")},
			},
			want: apperrors.ExitErrorGeneric,
		},
		{
			name: "inconsistent table",
			results: []FoldResult{
				{Name: "A", Err: &nussinov.TracebackError{I: 0, J: 3}},
			},
			want: apperrors.ExitErrorMismatch,
		},
		{
			name: "mixed",
			results: []FoldResult{
				{Name: "A", Result: same},
				{Name: "B", Err: errors.New("fail")},
			},
			want:     apperrors.ExitSuccess,
			presents: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &mockPresenter{}
			got := AnalyzeComparisonResults(tt.results, PresentationOptions{}, p, p, io.Discard)
			if got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
			if p.tableCalls != 1 {
				t.Errorf("comparison table presented %d times", p.tableCalls)
			}
			if (p.presented != nil) != tt.presents {
				t.Errorf("result presented = %v, want %v", p.presented != nil, tt.presents)
			}
		})
	}
}

func TestAnalyzeComparisonResultsPresentsFastest(t *testing.T) {
	t.Parallel()
	res := mustResult(t, "AUGC")
	p := &mockPresenter{}
	results := []FoldResult{
		{Name: "slow", Result: res, Duration: time.Second},
		{Name: "fast", Result: res, Duration: time.Millisecond},
	}
	AnalyzeComparisonResults(results, PresentationOptions{}, p, p, io.Discard)
	if p.presented == nil || p.presented.Name != "fast" {
		t.Errorf("presented %+v, want the fastest result", p.presented)
	}
}
