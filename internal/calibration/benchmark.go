package calibration

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/seqio"
)

// Recorder receives one observation per benchmark fold.
type Recorder interface {
	ObserveFold(strategy string, length int, d time.Duration, tableBytes uint64, err error)
}

// BenchmarkPoint is one line of the benchmark.
type BenchmarkPoint struct {
	Length     int
	Duration   time.Duration
	TableBytes uint64
	Score      int
}

// FormatBenchmarkLine renders a point as
// "Sequence Length: 100 | Time Taken: 1.23 ms | Memory: 0.08 MB".
func FormatBenchmarkLine(p BenchmarkPoint) string {
	return fmt.Sprintf("Sequence Length: %d | Time Taken: %s | Memory: %s",
		p.Length, format.FormatMillis(p.Duration), format.FormatMegabytes(p.TableBytes))
}

// RunBenchmark folds a random sequence of each length with folder, printing
// one line per length as it completes. rec may be nil.
func RunBenchmark(ctx context.Context, folder nussinov.Folder, lengths []int, opts nussinov.Options, rng *rand.Rand, out io.Writer, rec Recorder) ([]BenchmarkPoint, error) {
	points := make([]BenchmarkPoint, 0, len(lengths))
	for _, n := range lengths {
		seq := seqio.Random(n, rng)
		start := time.Now()
		res, err := folder.Fold(ctx, nil, 0, seq, opts)
		d := time.Since(start)
		if err != nil {
			if rec != nil {
				rec.ObserveFold(folder.Name(), n, d, 0, err)
			}
			return points, fmt.Errorf("length %d: %w", n, err)
		}
		p := BenchmarkPoint{Length: n, Duration: d, TableBytes: res.Table.Bytes(), Score: res.Structure.Score}
		if rec != nil {
			rec.ObserveFold(folder.Name(), n, d, p.TableBytes, nil)
		}
		points = append(points, p)
		fmt.Fprintln(out, FormatBenchmarkLine(p))
	}
	return points, nil
}
