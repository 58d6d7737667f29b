package calibration

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/rnafold/internal/config"
	"github.com/agbru/rnafold/internal/nussinov"
)

func smallOptions() Options {
	return Options{Length: 48, Repeats: 1, Thresholds: []int{0, 4, 16}}
}

func TestCalibratePicksMeasuredThreshold(t *testing.T) {
	t.Parallel()
	best, results, err := Calibrate(context.Background(), smallOptions(), nussinov.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Contains(t, []int{0, 4, 16}, best)

	fastest := results[0]
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.GreaterOrEqual(t, r.Duration, time.Duration(0))
		if r.Duration < fastest.Duration {
			fastest = r
		}
	}
	assert.Equal(t, fastest.Threshold, best)
}

type lastProgress struct {
	mu   sync.Mutex
	seen map[int]float64
}

func (l *lastProgress) Update(idx int, p float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seen[idx] = p
}

func TestCalibrateNotifiesObserver(t *testing.T) {
	t.Parallel()
	obs := &lastProgress{seen: make(map[int]float64)}
	opts := smallOptions()
	opts.Observer = obs
	_, _, err := Calibrate(context.Background(), opts, nussinov.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{0: 1, 1: 1, 2: 1}, obs.seen)
}

func TestCalibrateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Calibrate(ctx, smallOptions(), nussinov.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsDefaults(t *testing.T) {
	t.Parallel()
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultCalibrationLength, o.Length)
	assert.Equal(t, DefaultCalibrationRepeats, o.Repeats)
	assert.Equal(t, GenerateParallelThresholds(), o.Thresholds)
}

func TestRunCalibrationSavesProfile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "profile.json")
	cfg := config.AppConfig{CalibrationProfile: path, Match: 1, MinLoop: 0}

	var out bytes.Buffer
	code := RunCalibration(context.Background(), cfg, smallOptions(), &out, zerolog.Nop())
	require.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Calibration Summary")
	assert.Contains(t, out.String(), "Sequential")
	assert.Contains(t, out.String(), "(Optimal)")

	profile, loaded := LoadOrCreateProfile(path)
	require.True(t, loaded)
	assert.Equal(t, 48, profile.CalibrationLength)
	assert.True(t, profile.IsValid())
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := config.AppConfig{CalibrationProfile: filepath.Join(t.TempDir(), "p.json"), Match: 1}
	assert.Equal(t, 130, RunCalibration(ctx, cfg, smallOptions(), io.Discard, zerolog.Nop()))
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	fresh := NewProfile()
	fresh.OptimalParallelThreshold = 384
	freshPath := filepath.Join(dir, "fresh.json")
	require.NoError(t, fresh.SaveProfile(freshPath))

	old := NewProfile()
	old.OptimalParallelThreshold = 384
	old.CalibratedAt = time.Now().Add(-2 * DefaultMaxProfileAge)
	oldPath := filepath.Join(dir, "old.json")
	require.NoError(t, old.SaveProfile(oldPath))

	tests := []struct {
		name          string
		cfg           config.AppConfig
		path          string
		wantThreshold int
		wantUsed      bool
	}{
		{"fresh profile applies", config.AppConfig{}, freshPath, 384, true},
		{"explicit threshold wins", config.AppConfig{Threshold: 64}, freshPath, 64, false},
		{"stale profile ignored", config.AppConfig{}, oldPath, 0, false},
		{"missing profile", config.AppConfig{}, filepath.Join(dir, "none.json"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, used := LoadCachedCalibration(tt.cfg, tt.path, zerolog.Nop())
			assert.Equal(t, tt.wantUsed, used)
			assert.Equal(t, tt.wantThreshold, got.Threshold)
		})
	}
}
