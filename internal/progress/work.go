package progress

// ReportThreshold is the minimum progress delta between two reports.
const ReportThreshold = 0.01

// DiagonalWork returns the relative cost of filling diagonal l (l = j - i)
// of an n×n table: n-l cells, each scanning l split points.
func DiagonalWork(n, l int) float64 {
	if l <= 0 || l >= n {
		return 0
	}
	return float64(n-l) * float64(l)
}

// CalcTotalWork returns the summed DiagonalWork over l = 1..n-1, which is
// n·S1 - S2 with S1 = Σl and S2 = Σl².
func CalcTotalWork(n int) float64 {
	if n < 2 {
		return 0
	}
	m := float64(n - 1)
	s1 := m * (m + 1) / 2
	s2 := m * (m + 1) * (2*m + 1) / 6
	return float64(n)*s1 - s2
}

// ReportStepProgress reports done/total through cb when it moved by at least
// ReportThreshold since lastReported, or when the work is complete. It
// returns the value last reported.
func ReportStepProgress(cb ProgressCallback, lastReported, done, total float64) float64 {
	if cb == nil {
		return lastReported
	}
	p := 1.0
	if total > 0 {
		p = done / total
	}
	if p > 1.0 {
		p = 1.0
	}
	if p-lastReported >= ReportThreshold || (p >= 1.0 && lastReported < 1.0) {
		cb(p)
		return p
	}
	return lastReported
}
