package nussinov

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func mustFold(t *testing.T, seq string, opts Options) *Result {
	t.Helper()
	res, err := Fold(NewSequence(seq), opts)
	if err != nil {
		t.Fatalf("Fold(%q): %v", seq, err)
	}
	return res
}

func TestReconstructScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		seq     string
		minLoop int
		pairs   Pairing
		bracket string
	}{
		{"AUGC splits into two pairs", "AUGC", 0, Pairing{{0, 1}, {2, 3}}, "()()"},
		{"i unpaired before pair", "AAU", 0, Pairing{{1, 2}}, ".()"},
		{"j unpaired before pair", "AUU", 0, Pairing{{0, 1}}, "()."},
		{"hairpin", "GGGAAACCC", 0, Pairing{{0, 8}, {1, 7}, {2, 6}}, "(((...)))"},
		{"hairpin with loop", "GGGGAAAACCCC", 3, Pairing{{0, 11}, {1, 10}, {2, 9}, {3, 8}}, "((((....))))"},
		{"loop too short", "AU", 1, nil, ".."},
		{"no complementary symbols", "AAAA", 0, nil, "...."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultOptions()
			opts.MinLoopLength = tt.minLoop
			st := mustFold(t, tt.seq, opts).Structure
			if !slices.Equal(st.Pairs, tt.pairs) {
				t.Errorf("pairs = %v, want %v", st.Pairs, tt.pairs)
			}
			if st.Bracket != tt.bracket {
				t.Errorf("bracket = %q, want %q", st.Bracket, tt.bracket)
			}
		})
	}
}

func TestReconstructHairpin42(t *testing.T) {
	t.Parallel()
	res := mustFold(t, hairpin42, DefaultOptions())
	st := res.Structure

	if len(st.Pairs) == 0 {
		t.Fatal("expected a non-empty pairing")
	}
	if len(st.Pairs) != res.Table.At(0, 41) {
		t.Errorf("%d pairs, table[0][41] = %d", len(st.Pairs), res.Table.At(0, 41))
	}
	if len(st.Bracket) != 42 {
		t.Errorf("bracket length %d, want 42", len(st.Bracket))
	}
	open, closed := 0, 0
	for _, c := range st.Bracket {
		switch c {
		case '(':
			open++
		case ')':
			closed++
		}
	}
	if open != closed || open != len(st.Pairs) {
		t.Errorf("bracket counts ( %d ) %d, pairs %d", open, closed, len(st.Pairs))
	}
	const want = "((((((()((((()()(())()()(().))))))).)))).."
	if st.Bracket != want {
		t.Errorf("bracket = %s\nwant      %s", st.Bracket, want)
	}
	if err := st.Pairs.Validate(42); err != nil {
		t.Error(err)
	}
}

func TestReconstructPath(t *testing.T) {
	t.Parallel()
	st := mustFold(t, "AAU", DefaultOptions()).Structure
	want := []Cell{{0, 2}, {1, 2}}
	if !slices.Equal(st.Path, want) {
		t.Errorf("path = %v, want %v", st.Path, want)
	}

	st = mustFold(t, "GC", DefaultOptions()).Structure
	if want := []Cell{{0, 1}}; !slices.Equal(st.Path, want) || len(st.Pairs) != 1 {
		t.Errorf("path = %v pairs = %v, want %v and one pair", st.Path, st.Pairs, want)
	}

	st = mustFold(t, "GGGAAACCC", DefaultOptions()).Structure
	if st.Path[0] != (Cell{0, 8}) {
		t.Errorf("path starts at %v", st.Path[0])
	}
	for _, c := range st.Path {
		if c.I > c.J {
			t.Errorf("path cell %v has i > j", c)
		}
	}
}

func TestReconstructBoundaries(t *testing.T) {
	t.Parallel()
	for _, seq := range []string{"", "C"} {
		st := mustFold(t, seq, DefaultOptions()).Structure
		if len(st.Pairs) != 0 {
			t.Errorf("%q: pairs = %v", seq, st.Pairs)
		}
		if len(st.Bracket) != len(seq) {
			t.Errorf("%q: bracket = %q", seq, st.Bracket)
		}
	}
}

func TestReconstructSizeMismatch(t *testing.T) {
	t.Parallel()
	table, err := BuildScoreTable(NewSequence("GGGAAACCC"), DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	_, err = Reconstruct(NewSequence("GGGAAAC"), table, DefaultOptions())
	if !errors.Is(err, ErrInconsistentTable) {
		t.Fatalf("expected ErrInconsistentTable, got %v", err)
	}
}

func TestReconstructTamperedTable(t *testing.T) {
	t.Parallel()
	seq := NewSequence("GGGAAACCC")
	table, err := BuildScoreTable(seq, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	table.set(0, 8, 100)

	_, err = Reconstruct(seq, table, DefaultOptions())
	var tbErr *TracebackError
	if !errors.As(err, &tbErr) {
		t.Fatalf("expected *TracebackError, got %v", err)
	}
	if tbErr.I != 0 || tbErr.J != 8 || tbErr.Value != 100 {
		t.Errorf("unexpected error detail: %+v", tbErr)
	}
	if !errors.Is(err, ErrInconsistentTable) {
		t.Error("TracebackError must wrap ErrInconsistentTable")
	}
}

// A table built with one scoring and walked with another either fails
// explicitly or still yields a valid pairing. It never panics.
func TestReconstructScoringMismatch(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(9, 9))
	built := Options{MatchScore: 2, MismatchScore: 0}
	walked := DefaultOptions()
	for range 50 {
		seq := randomSequence(rng, 40)
		table, err := BuildScoreTable(seq, built)
		if err != nil {
			t.Fatal(err)
		}
		st, err := Reconstruct(seq, table, walked)
		if err != nil {
			if !errors.Is(err, ErrInconsistentTable) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			continue
		}
		if err := st.Pairs.Validate(seq.Len()); err != nil {
			t.Fatalf("invalid pairing from mismatched scoring: %v", err)
		}
	}
}

func TestReconstructUsesConfiguredScores(t *testing.T) {
	t.Parallel()
	opts := Options{MatchScore: 3, MismatchScore: 0}
	res := mustFold(t, "GGGAAACCC", opts)
	if res.Table.Score() != 9 {
		t.Errorf("Score() = %d, want 9", res.Table.Score())
	}
	if got := PairingScore(NewSequence("GGGAAACCC"), res.Structure.Pairs, opts.Scoring()); got != 9 {
		t.Errorf("PairingScore = %d, want 9", got)
	}
}
