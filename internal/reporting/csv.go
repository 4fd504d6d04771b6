package reporting

import (
	"fmt"
	"strings"

	"polymarket-shadow-lab/internal/domain"
)

// RenderGroupCSV renders per-group accumulators as a CSV string, rows in
// lexicographic key order. Used by the archive tool for offline inspection.
func RenderGroupCSV(keyName string, keys []string, groups map[string]*domain.GroupStats) string {
	var sb strings.Builder

	sb.WriteString(keyName)
	sb.WriteString(",n,pnl_sum,q_set_sum,q_req_sum,set_ratio\n")

	for _, k := range keys {
		g := groups[k]
		sb.WriteString(fmt.Sprintf("%s,%d,%.6f,%.6f,%.6f,%.4f\n",
			k,
			g.Count,
			g.PnLSum,
			g.QSetSum,
			g.QReqSum,
			g.SetRatio(),
		))
	}

	return sb.String()
}
