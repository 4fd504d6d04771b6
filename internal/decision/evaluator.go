package decision

import (
	"fmt"

	"polymarket-shadow-lab/internal/domain"
)

// Evaluate produces the GO/NO_GO verdict from a Summary's global fields.
// GO iff TotalPnL > 0 and the global set ratio >= 0.85; anything else,
// including the empty-input summary, is NO_GO. Pure function, no I/O.
func Evaluate(sum *domain.Summary) *Result {
	ratio := sum.SetRatio()

	pnlPass := sum.TotalPnL > PnLThreshold
	ratioPass := ratio >= SetRatioThreshold

	criteria := []CriterionResult{
		{
			Name:      "Total shadow PnL",
			Threshold: fmt.Sprintf("> %g", PnLThreshold),
			Actual:    fmt.Sprintf("%.6f", sum.TotalPnL),
			Pass:      pnlPass,
		},
		{
			Name:      "Set ratio",
			Threshold: fmt.Sprintf(">= %g", SetRatioThreshold),
			Actual:    fmt.Sprintf("%.4f", ratio),
			Pass:      ratioPass,
		},
	}

	if pnlPass && ratioPass {
		return &Result{
			Decision: DecisionGO,
			Criteria: criteria,
			Reasons: []string{
				fmt.Sprintf("TotalShadowPnL > %g", PnLThreshold),
				fmt.Sprintf("SetRatio >= %g", SetRatioThreshold),
			},
		}
	}

	var reasons []string
	if !pnlPass {
		reasons = append(reasons, fmt.Sprintf("TotalShadowPnL <= %g", PnLThreshold))
	}
	if !ratioPass {
		reasons = append(reasons, fmt.Sprintf("SetRatio < %g", SetRatioThreshold))
	}

	return &Result{
		Decision: DecisionNOGO,
		Criteria: criteria,
		Reasons:  reasons,
	}
}
