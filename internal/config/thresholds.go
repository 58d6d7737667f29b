package config

import "runtime"

// Threshold resolution, highest priority first:
//   1. --threshold
//   2. RNAFOLD_THRESHOLD
//   3. cached calibration profile
//   4. the CPU-count heuristic below
//   5. nussinov.DefaultParallelThreshold (diagonal strategy only)

// ApplyAdaptiveThresholds fills a zero Threshold from the CPU count.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalParallelThreshold guesses the diagonal length above which
// splitting a diagonal across goroutines pays off. More cores amortize the
// per-diagonal barrier sooner.
func EstimateOptimalParallelThreshold() int {
	return parallelThresholdFor(runtime.NumCPU())
}

func parallelThresholdFor(numCPU int) int {
	switch {
	case numCPU <= 1:
		return 0
	case numCPU <= 2:
		return 1024
	case numCPU <= 4:
		return 512
	case numCPU <= 8:
		return 256
	case numCPU <= 16:
		return 192
	default:
		return 128
	}
}
