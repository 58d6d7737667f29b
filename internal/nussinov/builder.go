package nussinov

import (
	"context"

	"github.com/agbru/rnafold/internal/progress"
)

// BuildScoreTable fills the Nussinov score table for seq.
//
// Cell (i, j) holds the maximum of: leaving i unpaired, leaving j unpaired,
// pairing i with j (only when j-i > MinLoopLength), and splitting the interval
// at every k in [i, j). Cells are filled in order of increasing j-i.
func BuildScoreTable(seq Sequence, opts Options) (*Table, error) {
	return BuildScoreTableContext(context.Background(), seq, opts, nil)
}

// BuildScoreTableContext is BuildScoreTable with cancellation and progress.
//
// ctx is checked between diagonals; a cancelled fill returns ctx.Err() and no
// table. report, when non-nil, receives the completed fraction of work,
// weighted by the cost of each diagonal, and always ends with 1.0 on success.
func BuildScoreTableContext(ctx context.Context, seq Sequence, opts Options, report progress.ProgressCallback) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	n := seq.Len()
	f := newFiller(seq, opts)
	workers := opts.workers()
	total := progress.CalcTotalWork(n)
	var done, last float64

	for l := 1; l < n; l++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells := n - l
		if opts.ParallelThreshold > 0 && cells >= opts.ParallelThreshold && workers > 1 {
			if err := f.fillDiagonalParallel(ctx, l, workers); err != nil {
				return nil, err
			}
		} else {
			f.fillDiagonal(l, 0, cells)
		}
		done += progress.DiagonalWork(n, l)
		last = progress.ReportStepProgress(report, last, done, total)
	}
	progress.ReportStepProgress(report, last, total, total)

	return f.table, nil
}

// filler holds the state shared by every cell computation of one fill.
type filler struct {
	table   *Table
	seq     Sequence
	scoring Scoring
	minLoop int
}

func newFiller(seq Sequence, opts Options) *filler {
	return &filler{
		table:   newTable(seq.Len()),
		seq:     seq,
		scoring: opts.Scoring(),
		minLoop: opts.MinLoopLength,
	}
}

// fillDiagonal fills cells (i, i+l) for i in [from, to).
func (f *filler) fillDiagonal(l, from, to int) {
	for i := from; i < to; i++ {
		f.fillCell(i, i+l)
	}
}

// fillCell computes cell (i, j), j > i. Every cell it reads lies on a shorter
// diagonal. Cells below the diagonal are read straight from storage; they are
// never written and hold 0.
func (f *filler) fillCell(i, j int) {
	n := f.table.n
	c := f.table.cells

	best := c[(i+1)*n+j]
	if v := c[i*n+j-1]; v > best {
		best = v
	}
	if j-i > f.minLoop {
		if v := c[(i+1)*n+j-1] + f.scoring.pairScoreAt(f.seq, i, j); v > best {
			best = v
		}
	}
	row := c[i*n : i*n+n]
	for k := i; k < j; k++ {
		if v := row[k] + c[(k+1)*n+j]; v > best {
			best = v
		}
	}
	c[i*n+j] = best
}
