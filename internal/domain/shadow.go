package domain

import "sort"

// ShadowRecord is one settled shadow simulation row from shadow_log.csv.
// Fields mirror the columns the report consumes; extra columns in the log
// are ignored at parse time.
type ShadowRecord struct {
	PnLTotal float64 // simulated profit/loss for the settled signal
	QSet     float64 // quantity actually set across all legs
	QReq     float64 // quantity requested
	Bucket   string  // liquidity bucket label (e.g. Liquid, Thin)
	Strategy string  // strategy label (e.g. binary, triangle)
}

// GroupStats accumulates running sums for one group key.
// Created lazily on first occurrence of a key and mutated additively.
type GroupStats struct {
	PnLSum  float64
	QSetSum float64
	QReqSum float64
	Count   int
}

// Add folds one record into the accumulator.
func (g *GroupStats) Add(r ShadowRecord) {
	g.PnLSum += r.PnLTotal
	g.QSetSum += r.QSet
	g.QReqSum += r.QReq
	g.Count++
}

// SetRatio returns QSetSum/QReqSum, or 0 when QReqSum <= 0.
// The zero case is a documented convention, not a computed ratio.
func (g *GroupStats) SetRatio() float64 {
	return SetRatio(g.QSetSum, g.QReqSum)
}

// SetRatio returns qSet/qReq, or 0 when qReq <= 0.
// The ratio is deliberately not clamped: fills exceeding requests report > 1.
func SetRatio(qSet, qReq float64) float64 {
	if qReq <= 0 {
		return 0
	}
	return qSet / qReq
}

// Summary is the immutable aggregation snapshot for one shadow log.
type Summary struct {
	// Global totals
	TotalPnL  float64
	TotalQSet float64
	TotalQReq float64
	RowCount  int

	// PnLs holds every record's pnl_total, sorted ascending.
	PnLs []float64

	// Per-group accumulators keyed by label.
	ByBucket   map[string]*GroupStats
	ByStrategy map[string]*GroupStats
}

// SetRatio returns the global set ratio (sum-of-sums, not average-of-ratios).
func (s *Summary) SetRatio() float64 {
	return SetRatio(s.TotalQSet, s.TotalQReq)
}

// BucketKeys returns bucket labels in lexicographic order.
func (s *Summary) BucketKeys() []string {
	return sortedKeys(s.ByBucket)
}

// StrategyKeys returns strategy labels in lexicographic order.
func (s *Summary) StrategyKeys() []string {
	return sortedKeys(s.ByStrategy)
}

func sortedKeys(m map[string]*GroupStats) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
