package nussinov

import (
	"fmt"
	"runtime"
)

// Options configures table construction and traceback. The same Options must
// be passed to BuildScoreTable and Reconstruct; traceback re-derives the pair
// branch from MatchScore and MismatchScore.
type Options struct {
	// MatchScore is awarded to complementary pairs.
	MatchScore int
	// MismatchScore is awarded to non-complementary pairs.
	MismatchScore int
	// MinLoopLength is the distance j-i at or below which i and j may not pair.
	MinLoopLength int
	// ParallelThreshold is the minimum number of cells on a diagonal for the
	// diagonal to be filled by several goroutines. 0 disables parallel fill.
	ParallelThreshold int
	// Workers caps the goroutines used per diagonal. 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the reference parameters: match 1, mismatch 0,
// minimum loop length 0, sequential fill.
func DefaultOptions() Options {
	return Options{
		MatchScore:    DefaultMatchScore,
		MismatchScore: DefaultMismatchScore,
		MinLoopLength: DefaultMinLoopLength,
	}
}

// Scoring returns the pair scores carried by the options.
func (o Options) Scoring() Scoring {
	return Scoring{Match: o.MatchScore, Mismatch: o.MismatchScore}
}

// Validate rejects parameters no table can be built with.
func (o Options) Validate() error {
	if o.MinLoopLength < 0 {
		return fmt.Errorf("%w: minimum loop length %d is negative", ErrInvalidInput, o.MinLoopLength)
	}
	if o.ParallelThreshold < 0 {
		return fmt.Errorf("%w: parallel threshold %d is negative", ErrInvalidInput, o.ParallelThreshold)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: worker count %d is negative", ErrInvalidInput, o.Workers)
	}
	return nil
}

// workers resolves the goroutine cap for parallel fill.
func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}
