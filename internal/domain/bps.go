package domain

// Bps is a fee or edge expressed in basis points (1/10000).
type Bps int32

// Fee schedule for shadow settlement.
const (
	BpsPerUnit = 10_000

	// FeePoly is the taker fee applied to each CLOB entry leg.
	FeePoly Bps = 200
	// FeeMerge is the settlement fee applied to a completed set.
	FeeMerge Bps = 10
)

// Ratio converts basis points to a multiplier fraction.
func (b Bps) Ratio() float64 {
	return float64(b) / BpsPerUnit
}

// ApplyCost returns the unit cost of buying at price p, fee included.
func (b Bps) ApplyCost(p float64) float64 {
	return p * (1 + b.Ratio())
}

// ApplyProceeds returns the unit proceeds of selling at price p, net of fee.
func (b Bps) ApplyProceeds(p float64) float64 {
	return p * (1 - b.Ratio())
}
