package nussinov

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fillDiagonalParallel fills diagonal l by splitting its cells into contiguous
// chunks, one goroutine each. Cells of one diagonal only read shorter
// diagonals, so the chunks write disjoint cells without locking. Wait is the
// barrier before the next diagonal. A chunk started after ctx is done
// returns ctx.Err() without filling.
func (f *filler) fillDiagonalParallel(ctx context.Context, l, workers int) error {
	cells := f.table.n - l
	chunks := min(workers, cells/MinCellsPerWorker)
	if chunks < 2 {
		f.fillDiagonal(l, 0, cells)
		return nil
	}
	size := (cells + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(workers)
	for from := 0; from < cells; from += size {
		to := min(from+size, cells)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f.fillDiagonal(l, from, to)
			return nil
		})
	}
	return g.Wait()
}
