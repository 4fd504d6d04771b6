// Package decision implements the GO/NO_GO gate for promoting a strategy
// from shadow simulation to live trading.
package decision

// Decision is the binary readiness verdict.
type Decision string

const (
	DecisionGO   Decision = "GO"
	DecisionNOGO Decision = "NO_GO"
)

// Gate thresholds, frozen for the Phase 1 verdict.
const (
	// PnLThreshold: total shadow PnL must exceed this to pass.
	PnLThreshold = 0.0
	// SetRatioThreshold: global set ratio must be at least this to pass.
	SetRatioThreshold = 0.85
)

// CriterionResult records pass/fail for one gate criterion.
type CriterionResult struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// Result is the final verdict with its criterion checklist and the reason
// strings rendered into reports.
type Result struct {
	Decision Decision
	Criteria []CriterionResult
	Reasons  []string
}
