package domain

// RunSummary is one archived aggregation result for a recorder run.
// Stored append-only; a run is summarized at most once.
type RunSummary struct {
	RunID       string
	GeneratedAt int64 // Unix ms

	RowCount  int
	TotalPnL  float64
	TotalQSet float64
	TotalQReq float64
	SetRatio  float64
	Worst1Pct float64 // pnl_total at the 1st percentile (nearest-rank)

	Decision string // "GO" | "NO_GO"
}
