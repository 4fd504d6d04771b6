// Package metrics computes aggregate statistics from shadow records.
package metrics

import (
	"sort"

	"polymarket-shadow-lab/internal/domain"
)

// Aggregate folds records into a Summary in a single pass over input order.
// Each record contributes to the global totals, the full PnL list, and the
// lazily created accumulators for its bucket and strategy labels.
// An empty input yields a degenerate Summary (zero counts, empty maps).
func Aggregate(records []domain.ShadowRecord) *domain.Summary {
	sum := &domain.Summary{
		PnLs:       make([]float64, 0, len(records)),
		ByBucket:   make(map[string]*domain.GroupStats),
		ByStrategy: make(map[string]*domain.GroupStats),
	}

	for _, r := range records {
		sum.TotalPnL += r.PnLTotal
		sum.TotalQSet += r.QSet
		sum.TotalQReq += r.QReq
		sum.RowCount++
		sum.PnLs = append(sum.PnLs, r.PnLTotal)

		groupFor(sum.ByBucket, r.Bucket).Add(r)
		groupFor(sum.ByStrategy, r.Strategy).Add(r)
	}

	sort.Float64s(sum.PnLs)
	return sum
}

// groupFor returns the accumulator for key, inserting a zero-initialized
// entry on first occurrence.
func groupFor(m map[string]*domain.GroupStats, key string) *domain.GroupStats {
	g, ok := m[key]
	if !ok {
		g = &domain.GroupStats{}
		m[key] = g
	}
	return g
}
