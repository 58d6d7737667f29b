package calibration

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/rnafold/internal/nussinov"
	"github.com/agbru/rnafold/internal/progress"
	"github.com/agbru/rnafold/internal/seqio"
)

type observation struct {
	strategy   string
	length     int
	tableBytes uint64
	err        error
}

type fakeRecorder struct{ obs []observation }

func (r *fakeRecorder) ObserveFold(strategy string, length int, _ time.Duration, tableBytes uint64, err error) {
	r.obs = append(r.obs, observation{strategy, length, tableBytes, err})
}

type failingFolder struct{}

func (failingFolder) Name() string { return "failing" }
func (failingFolder) Fold(context.Context, chan<- progress.ProgressUpdate, int, nussinov.Sequence, nussinov.Options) (*nussinov.Result, error) {
	return nil, errors.New("boom")
}

func TestFormatBenchmarkLine(t *testing.T) {
	t.Parallel()
	p := BenchmarkPoint{Length: 1000, Duration: 1500 * time.Microsecond, TableBytes: 8_000_000}
	assert.Equal(t, "Sequence Length: 1000 | Time Taken: 1.50 ms | Memory: 7.63 MB", FormatBenchmarkLine(p))
}

func TestRunBenchmark(t *testing.T) {
	t.Parallel()
	folder, err := nussinov.NewDefaultFactory().Get("sequential")
	require.NoError(t, err)

	rec := &fakeRecorder{}
	var out bytes.Buffer
	points, err := RunBenchmark(context.Background(), folder, []int{10, 30}, nussinov.DefaultOptions(), seqio.NewRand(7), &out, rec)
	require.NoError(t, err)
	require.Len(t, points, 2)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Sequence Length: 10 | Time Taken: "))
	assert.True(t, strings.HasPrefix(lines[1], "Sequence Length: 30 | Time Taken: "))

	require.Len(t, rec.obs, 2)
	assert.Equal(t, 30, rec.obs[1].length)
	assert.Equal(t, points[1].TableBytes, rec.obs[1].tableBytes)
	assert.Equal(t, nussinov.TableBytes(30), points[1].TableBytes)
	assert.NoError(t, rec.obs[0].err)
}

func TestRunBenchmarkFailure(t *testing.T) {
	t.Parallel()
	rec := &fakeRecorder{}
	var out bytes.Buffer
	_, err := RunBenchmark(context.Background(), failingFolder{}, []int{5}, nussinov.DefaultOptions(), seqio.NewRand(1), &out, rec)
	assert.ErrorContains(t, err, "length 5")
	require.Len(t, rec.obs, 1)
	assert.Error(t, rec.obs[0].err)
	assert.Empty(t, out.String())
}

func TestRunBenchmarkNilRecorder(t *testing.T) {
	t.Parallel()
	folder, err := nussinov.NewDefaultFactory().Get("diagonal")
	require.NoError(t, err)
	_, err = RunBenchmark(context.Background(), folder, []int{12}, nussinov.DefaultOptions(), seqio.NewRand(3), &bytes.Buffer{}, nil)
	assert.NoError(t, err)
}
