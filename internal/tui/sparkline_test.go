package tui

import (
	"slices"
	"testing"
)

func TestRingBuffer(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		capacity int
		push     []float64
		resize   int
		want     []float64
		wantCap  int
	}{
		{"partial", 3, []float64{1, 2}, 0, []float64{1, 2}, 3},
		{"full", 3, []float64{1, 2, 3}, 0, []float64{1, 2, 3}, 3},
		{"overflow drops oldest", 3, []float64{1, 2, 3, 4, 5}, 0, []float64{3, 4, 5}, 3},
		{"zero capacity becomes one", 0, []float64{7, 8}, 0, []float64{8}, 1},
		{"grow keeps samples", 2, []float64{1, 2, 3}, 4, []float64{2, 3}, 4},
		{"shrink keeps newest", 4, []float64{1, 2, 3, 4}, 2, []float64{3, 4}, 2},
		{"same capacity", 3, []float64{1, 2}, 3, []float64{1, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rb := NewRingBuffer(tt.capacity)
			for _, v := range tt.push {
				rb.Push(v)
			}
			if tt.resize != 0 {
				rb.Resize(tt.resize)
			}
			if got := rb.Slice(); !slices.Equal(got, tt.want) {
				t.Errorf("Slice() = %v, want %v", got, tt.want)
			}
			if rb.Cap() != tt.wantCap {
				t.Errorf("Cap() = %d, want %d", rb.Cap(), tt.wantCap)
			}
			if rb.Last() != tt.want[len(tt.want)-1] {
				t.Errorf("Last() = %v, want %v", rb.Last(), tt.want[len(tt.want)-1])
			}
		})
	}
}

func TestRingBufferEmptyAndReset(t *testing.T) {
	t.Parallel()
	rb := NewRingBuffer(4)
	if rb.Last() != 0 || rb.Slice() != nil || rb.Len() != 0 {
		t.Fatal("new buffer should be empty")
	}
	rb.Push(5)
	rb.Reset()
	if rb.Len() != 0 || rb.Slice() != nil {
		t.Errorf("Reset left %v", rb.Slice())
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		values []float64
		want   string
	}{
		{"empty", nil, ""},
		{"zeros", []float64{0, 0}, "▁▁"},
		{"full", []float64{100}, "█"},
		{"gradient", []float64{0, 15, 29, 43, 58, 72, 86, 100}, "▁▂▃▄▅▆▇█"},
		{"clamped", []float64{-10, 250}, "▁█"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values); got != tt.want {
				t.Errorf("RenderSparkline(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
