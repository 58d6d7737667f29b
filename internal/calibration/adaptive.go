package calibration

import (
	"runtime"
	"slices"

	"github.com/agbru/rnafold/internal/config"
)

// GenerateParallelThresholds lists the diagonal thresholds, in cells, that a
// full calibration times. 0 is the sequential baseline. With few cores the
// per-diagonal barrier is relatively expensive, so only coarse thresholds are
// tried; with many cores finer splits are worth testing.
func GenerateParallelThresholds() []int {
	return parallelThresholdsFor(runtime.NumCPU())
}

func parallelThresholdsFor(numCPU int) []int {
	thresholds := []int{0}
	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		return append(thresholds, 256, 512, 1024, 2048)
	case numCPU <= 8:
		return append(thresholds, 128, 256, 512, 1024, 2048)
	default:
		return append(thresholds, 64, 128, 256, 512, 1024, 2048)
	}
}

// GenerateQuickParallelThresholds is the reduced set for a fast check.
func GenerateQuickParallelThresholds() []int {
	if runtime.NumCPU() == 1 {
		return []int{0}
	}
	thresholds := []int{0, config.EstimateOptimalParallelThreshold(), 1024}
	slices.Sort(thresholds)
	return slices.Compact(thresholds)
}

// EstimateOptimalParallelThreshold returns the CPU-count heuristic without
// benchmarking.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }
