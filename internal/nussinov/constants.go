package nussinov

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Scoring Defaults
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultMatchScore is awarded to a complementary pair (Watson-Crick or G·U).
	DefaultMatchScore = 1

	// DefaultMismatchScore is awarded when two non-complementary positions are
	// paired. With the default of 0 such pairs never improve a cell.
	DefaultMismatchScore = 0

	// DefaultMinLoopLength is the distance j-i at or below which i and j may
	// not pair. 0 allows adjacent positions to pair.
	DefaultMinLoopLength = 0
)

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the number of cells a diagonal must hold
	// before its cells are filled by several goroutines. Each cell of diagonal
	// l costs l additions for the bifurcation scan, so short diagonals near the
	// end of the fill are cheap despite their length; the threshold only looks
	// at the cell count to keep the decision O(1).
	DefaultParallelThreshold = 256

	// MinCellsPerWorker bounds how finely a diagonal is split. Chunks smaller
	// than this spend more time in scheduling than in the bifurcation scan.
	MinCellsPerWorker = 32

	// CalibrationLength is the sequence length used for threshold calibration
	// runs: long enough to expose parallel speedup, short enough to finish in
	// well under a second per run on current hardware.
	CalibrationLength = 1200

	// CellSize is the in-memory size in bytes of one table cell.
	CellSize = bits.UintSize / 8
)
