package nussinov

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

// oracleTable evaluates every cell top-down with memoization, independently
// of the bottom-up fill order.
func oracleTable(seq Sequence, s Scoring, minLoop int) [][]int {
	n := seq.Len()
	memo := make([][]int, n)
	for i := range memo {
		memo[i] = make([]int, n)
		for j := range memo[i] {
			memo[i][j] = -1
		}
	}
	var dp func(i, j int) int
	dp = func(i, j int) int {
		if i >= j {
			return 0
		}
		if memo[i][j] >= 0 {
			return memo[i][j]
		}
		best := max(dp(i+1, j), dp(i, j-1))
		if j-i > minLoop {
			best = max(best, dp(i+1, j-1)+s.PairScore(seq[i], seq[j]))
		}
		for k := i + 1; k < j; k++ {
			best = max(best, dp(i, k)+dp(k+1, j))
		}
		memo[i][j] = best
		return best
	}
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			memo[i][j] = dp(i, j)
		}
	}
	return memo
}

func TestBuilderMatchesOracle(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(2024, 6))
	for trial := range 20 {
		seq := randomSequence(rng, 5+rng.IntN(60))
		opts := Options{
			MatchScore:    1 + rng.IntN(3),
			MismatchScore: -rng.IntN(2),
			MinLoopLength: rng.IntN(4),
		}
		table, err := BuildScoreTable(seq, opts)
		if err != nil {
			t.Fatal(err)
		}
		want := oracleTable(seq, opts.Scoring(), opts.MinLoopLength)
		for i := 0; i < seq.Len(); i++ {
			for j := i + 1; j < seq.Len(); j++ {
				if got := table.At(i, j); got != want[i][j] {
					t.Fatalf("trial %d (%s, %+v): dp[%d][%d] = %d, oracle %d",
						trial, seq, opts, i, j, got, want[i][j])
				}
			}
		}
	}
}

type goldenCase struct {
	Sequence string `json:"sequence"`
	Match    int    `json:"match"`
	Mismatch int    `json:"mismatch"`
	MinLoop  int    `json:"min_loop"`
	Score    int    `json:"score"`
}

func TestGoldenScores(t *testing.T) {
	t.Parallel()
	data, err := os.ReadFile(filepath.Join("testdata", "golden.json"))
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}
	var cases []goldenCase
	if err := json.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding golden file: %v", err)
	}

	factory := NewDefaultFactory()
	for _, name := range factory.List() {
		folder, _ := factory.Get(name)
		for _, c := range cases {
			opts := Options{MatchScore: c.Match, MismatchScore: c.Mismatch, MinLoopLength: c.MinLoop, ParallelThreshold: 4}
			res, err := folder.Fold(t.Context(), nil, 0, NewSequence(c.Sequence), opts)
			if err != nil {
				t.Fatalf("%s %q: %v", name, c.Sequence, err)
			}
			if got := res.Table.Score(); got != c.Score {
				t.Errorf("%s %q %+v: score %d, golden %d", name, c.Sequence, opts, got, c.Score)
			}
			if got := PairingScore(NewSequence(c.Sequence), res.Structure.Pairs, opts.Scoring()); got != c.Score {
				t.Errorf("%s %q: pairing scores %d, golden %d", name, c.Sequence, got, c.Score)
			}
		}
	}
}
