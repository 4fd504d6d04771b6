package metrics

import "math"

// Percentile returns the nearest-rank value at fraction p of a pre-sorted
// ascending slice, using floor interpolation (no averaging between ranks).
// Empty input returns 0. p <= 0 returns the minimum, p >= 1 the maximum.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := int(math.Floor(p * float64(n-1)))
	return sorted[idx]
}

// Worst1PctPnL returns the pnl_total at the 1st percentile of the global
// distribution, a conservative tail-risk indicator.
func Worst1PctPnL(sortedPnLs []float64) float64 {
	return Percentile(sortedPnLs, 0.01)
}
