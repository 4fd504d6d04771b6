// Package reporting renders aggregated shadow metrics as the Day 14
// line-oriented report.
package reporting

import (
	"fmt"

	"polymarket-shadow-lab/internal/decision"
	"polymarket-shadow-lab/internal/domain"
)

// RenderLines renders a Summary, the worst-1% tail value, and the verdict as
// ordered key=value lines. Group sections iterate keys lexicographically.
// An empty summary takes the short four-line form: the header-only log case
// prints plain zeros and omits SetRatio precision and the worst1pct line.
func RenderLines(sum *domain.Summary, worst1Pct float64, res *decision.Result) []string {
	if sum.RowCount == 0 {
		return []string{
			"rows=0",
			"TotalShadowPnL_sum=0",
			"SetRatio=0",
			fmt.Sprintf("GO_NO_GO=%s", res.Decision),
		}
	}

	lines := make([]string, 0, 4+3*(len(sum.ByBucket)+len(sum.ByStrategy))+1)
	lines = append(lines,
		fmt.Sprintf("rows=%d", sum.RowCount),
		fmt.Sprintf("TotalShadowPnL_sum=%.6f", sum.TotalPnL),
		fmt.Sprintf("SetRatio=%.4f", sum.SetRatio()),
		fmt.Sprintf("worst1pct_pnl_total=%.6f", worst1Pct),
	)

	lines = appendGroupLines(lines, "bucket", sum.BucketKeys(), sum.ByBucket)
	lines = appendGroupLines(lines, "strategy", sum.StrategyKeys(), sum.ByStrategy)

	return append(lines, fmt.Sprintf("GO_NO_GO=%s", res.Decision))
}

func appendGroupLines(lines []string, prefix string, keys []string, groups map[string]*domain.GroupStats) []string {
	for _, k := range keys {
		g := groups[k]
		lines = append(lines,
			fmt.Sprintf("%s[%s].n=%d", prefix, k, g.Count),
			fmt.Sprintf("%s[%s].TotalShadowPnL_sum=%.6f", prefix, k, g.PnLSum),
			fmt.Sprintf("%s[%s].SetRatio=%.4f", prefix, k, g.SetRatio()),
		)
	}
	return lines
}
