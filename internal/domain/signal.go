package domain

// Bucket labels written by the recorder. The report treats buckets as
// free-form strings; these constants only standardize what we emit.
const (
	BucketLiquid = "Liquid"
	BucketThin   = "Thin"
)

// Strategy labels written by the recorder.
const (
	StrategyBinary   = "binary"
	StrategyTriangle = "triangle"
)

// TradeTick is one observed market trade from the public feed.
type TradeTick struct {
	TsMs     int64
	MarketID string
	TokenID  string
	Price    float64
	Size     float64
}

// SignalLeg is one leg of a pending arbitrage signal.
type SignalLeg struct {
	TokenID     string  `json:"token_id"`
	PLimit      float64 `json:"p_limit"`        // limit price the brain would have posted
	BestBidAtT0 float64 `json:"best_bid_at_t0"` // best bid at signal time, used for leftover dumping
}

// Signal is a shadow trading signal awaiting settlement. The recorder
// ingests signals as JSON lines with these field names.
type Signal struct {
	SignalID   uint64      `json:"signal_id"`
	TsSignalMs int64       `json:"ts_signal_ms"`
	MarketID   string      `json:"market_id"`
	Strategy   string      `json:"strategy"`
	Bucket     string      `json:"bucket"`
	QReq       float64     `json:"q_req"`
	Legs       []SignalLeg `json:"legs"`
}
