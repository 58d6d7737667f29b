package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldMetricsObserve(t *testing.T) {
	t.Parallel()
	m := NewFoldMetrics()
	m.ObserveFold("sequential", 100, 2*time.Millisecond, 80000, nil)
	m.ObserveFold("sequential", 200, 9*time.Millisecond, 320000, nil)
	m.ObserveFold("diagonal", 100, 0, 0, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.folds.WithLabelValues("sequential", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.folds.WithLabelValues("diagonal", "error")))
	assert.Equal(t, 320000.0, testutil.ToFloat64(m.tableBytes.WithLabelValues("200")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.tableBytes))
}

func TestFoldMetricsWriteTextfile(t *testing.T) {
	t.Parallel()
	m := NewFoldMetrics()
	m.ObserveFold("sequential", 42, time.Millisecond, 14112, nil)

	path := filepath.Join(t.TempDir(), "rnafold.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, `rnafold_folds_total{status="ok",strategy="sequential"} 1`)
	assert.Contains(t, text, `rnafold_table_bytes{length="42"} 14112`)
	assert.Contains(t, text, "rnafold_fill_duration_seconds_bucket")
}
