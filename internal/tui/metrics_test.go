package tui

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsModelUpdateMemStats(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.UpdateMemStats(MemStatsMsg{Alloc: 1 << 20, HeapSys: 2 << 20, NumGC: 7, PauseTotalNs: 3_000_000, NumGoroutine: 9})
	m.SetSize(60, 12)
	view := m.View()
	for _, s := range []string{"1.00 MiB / 2.00 MiB", "7 (3.0ms)", "Goroutines:"} {
		if !strings.Contains(view, s) {
			t.Errorf("view missing %q:\n%s", s, view)
		}
	}
}

func TestMetricsModelUpdateProgress(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(0.5, 2*time.Second)
	if m.speed <= 0 {
		t.Fatalf("speed = %v, want > 0", m.speed)
	}
	first := m.speed

	m.lastUpdate = time.Now().Add(-time.Second)
	m.UpdateProgress(0.6, time.Second)
	if m.speed >= first {
		t.Errorf("smoothed speed %v should drop below %v after a slower step", m.speed, first)
	}
}

func TestMetricsModelUpdateProgressTooFast(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.lastUpdate = time.Now()
	m.UpdateProgress(0.5, 0)
	if m.speed != 0 || m.lastProgress != 0 {
		t.Errorf("updates within 50ms must not move the speed, got %v", m.speed)
	}
	if m.progress != 0.5 {
		t.Errorf("progress = %v, want 0.5", m.progress)
	}
}

func TestMetricsModelSysStatsSparklines(t *testing.T) {
	t.Parallel()
	m := NewMetricsModel()
	m.SetSize(40, 14)
	if m.cpuHistory.Cap() != 40-2-sparklineLabelWidth {
		t.Errorf("history capacity = %d", m.cpuHistory.Cap())
	}
	m.UpdateSysStats(50, 25)
	m.UpdateSysStats(100, 75)
	view := m.View()
	if !strings.Contains(view, "CPU 100.0%") || !strings.Contains(view, "MEM  75.0%") {
		t.Errorf("sparklines missing:\n%s", view)
	}

	m.SetSize(40, 6)
	if strings.Contains(m.View(), "CPU") {
		t.Error("sparklines should hide on a short panel")
	}
}

func TestFormatMetricCol(t *testing.T) {
	t.Parallel()
	cell := formatMetricCol("Speed:", "1.0%/s", 30)
	if !strings.Contains(cell, "Speed:") || !strings.Contains(cell, "1.0%/s") {
		t.Errorf("cell = %q", cell)
	}
}
