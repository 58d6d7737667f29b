package memory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agbru/rnafold/internal/format"
	"github.com/agbru/rnafold/internal/nussinov"
)

// MemoryEstimate is the expected peak footprint of folding one sequence.
type MemoryEstimate struct {
	// TableBytes is the cell storage for one table.
	TableBytes uint64
	// Tables is the number of tables alive at once (one per strategy).
	Tables int
	// OverheadBytes covers the traceback stack, path and bracket string.
	OverheadBytes uint64
	// TotalBytes is Tables × TableBytes + OverheadBytes.
	TotalBytes uint64
}

// EstimateMemoryUsage estimates the memory to fold a sequence of length n
// with the given number of concurrently running strategies.
func EstimateMemoryUsage(n, strategies int) MemoryEstimate {
	if strategies < 1 {
		strategies = 1
	}
	table := nussinov.TableBytes(n)
	// Path and stack hold at most 2n cells of two ints each.
	overhead := uint64(n) * 2 * 2 * nussinov.CellSize
	return MemoryEstimate{
		TableBytes:    table,
		Tables:        strategies,
		OverheadBytes: overhead,
		TotalBytes:    uint64(strategies)*table + overhead,
	}
}

// ParseMemoryLimit parses sizes such as "512M", "8G", "64KB" or a plain byte
// count. Units are binary (K = 1024).
func ParseMemoryLimit(s string) (uint64, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, fmt.Errorf("empty memory limit")
	}
	s = strings.TrimSuffix(s, "B")
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1<<10, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1<<20, strings.TrimSuffix(s, "M")
	case strings.HasSuffix(s, "G"):
		mult, s = 1<<30, strings.TrimSuffix(s, "G")
	case strings.HasSuffix(s, "T"):
		mult, s = 1<<40, strings.TrimSuffix(s, "T")
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memory limit %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("memory limit must be positive")
	}
	return v * mult, nil
}

// FormatMemoryEstimate renders an estimate for display.
func FormatMemoryEstimate(e MemoryEstimate) string {
	if e.Tables > 1 {
		return fmt.Sprintf("%s (%d tables of %s)", format.FormatBytes(e.TotalBytes), e.Tables, format.FormatBytes(e.TableBytes))
	}
	return format.FormatBytes(e.TotalBytes)
}
