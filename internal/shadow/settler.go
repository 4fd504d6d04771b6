package shadow

import (
	"context"
	"errors"
	"time"

	"polymarket-shadow-lab/internal/domain"
)

// leftoverDumpMult discounts the best bid when dumping unmatched leg fills.
const leftoverDumpMult = 0.95

const tickInterval = 50 * time.Millisecond

// Config holds settlement parameters.
type Config struct {
	// Settlement window relative to the signal timestamp.
	WindowStartMs int64
	WindowEndMs   int64

	// TradeRetentionMs bounds the trade store.
	TradeRetentionMs int64

	// Conservative (p25) fill shares per bucket.
	FillShareLiquid float64
	FillShareThin   float64
}

// Settlement is the outcome of settling one signal.
type Settlement struct {
	Signal   domain.Signal
	QFill    []float64 // per leg, capped at QReq
	QSet     float64
	SetRatio float64
	PnLSet   float64
	PnLLeft  float64
	PnLTotal float64
}

// EmitFunc receives each settlement, typically appending it to the shadow log.
type EmitFunc func(*Settlement) error

// Settler holds signals until their settlement window elapses, then computes
// shadow fills from observed trade volume and emits one record per signal.
type Settler struct {
	cfg   Config
	store *TradeStore
	emit  EmitFunc

	pending []domain.Signal
	seen    map[uint64]struct{} // settled or pending signal IDs, for dedup

	nowMs func() int64
}

// NewSettler creates a settler emitting settlements through emit.
func NewSettler(cfg Config, emit EmitFunc) *Settler {
	return &Settler{
		cfg:   cfg,
		store: NewTradeStore(cfg.TradeRetentionMs),
		emit:  emit,
		seen:  make(map[uint64]struct{}),
		nowMs: func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock sets a custom clock for deterministic tests. The trade store
// shares the same clock.
func (s *Settler) WithClock(nowMs func() int64) *Settler {
	s.nowMs = nowMs
	s.store.WithClock(nowMs)
	return s
}

// OnTrade records an observed market trade.
func (s *Settler) OnTrade(t domain.TradeTick) {
	s.store.Push(t)
}

// OnSignal queues a signal for settlement. Duplicate signal IDs are dropped.
func (s *Settler) OnSignal(sig domain.Signal) {
	if _, dup := s.seen[sig.SignalID]; dup {
		return
	}
	s.seen[sig.SignalID] = struct{}{}
	s.pending = append(s.pending, sig)
}

// Tick settles every pending signal whose window has fully elapsed.
func (s *Settler) Tick() error {
	now := s.nowMs()

	stillPending := s.pending[:0]
	for _, sig := range s.pending {
		if now < sig.TsSignalMs+s.cfg.WindowEndMs {
			stillPending = append(stillPending, sig)
			continue
		}
		settlement := s.settleOne(sig)
		if err := s.emit(settlement); err != nil {
			return err
		}
	}
	s.pending = stillPending
	return nil
}

// Run consumes trades and signals until ctx is cancelled or a channel
// closes. Remaining due signals are settled on the final tick.
func (s *Settler) Run(ctx context.Context, trades <-chan domain.TradeTick, signals <-chan domain.Signal) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return s.Tick()
		case t, ok := <-trades:
			if !ok {
				return errors.New("trade channel closed")
			}
			s.OnTrade(t)
		case sig, ok := <-signals:
			if !ok {
				return errors.New("signal channel closed")
			}
			s.OnSignal(sig)
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				return err
			}
		}
	}
}

func (s *Settler) fillShare(bucket string) float64 {
	if bucket == domain.BucketThin {
		return s.cfg.FillShareThin
	}
	return s.cfg.FillShareLiquid
}

// settleOne computes the shadow fill for one signal: per-leg volume at or
// below the limit price scaled by the bucket fill share, the completed set
// as the worst leg, and the leftover dumped at a discounted best bid.
func (s *Settler) settleOne(sig domain.Signal) *Settlement {
	startMs := sig.TsSignalMs + s.cfg.WindowStartMs
	endMs := sig.TsSignalMs + s.cfg.WindowEndMs
	share := s.fillShare(sig.Bucket)

	qFill := make([]float64, len(sig.Legs))
	for i, leg := range sig.Legs {
		v := s.store.VolumeAtOrBetter(sig.MarketID, leg.TokenID, startMs, endMs, leg.PLimit)
		vMy := v * share
		qFill[i] = min(sig.QReq, vMy)
	}

	qSet := sig.QReq
	for _, q := range qFill {
		qSet = min(qSet, q)
	}

	var costPerSet float64
	for _, leg := range sig.Legs {
		costPerSet += domain.FeePoly.ApplyCost(leg.PLimit)
	}
	proceedsPerSet := domain.FeeMerge.ApplyProceeds(1.0)
	pnlSet := qSet*proceedsPerSet - qSet*costPerSet

	var pnlLeft float64
	for i, leg := range sig.Legs {
		qLeft := qFill[i] - qSet
		exit := leg.BestBidAtT0 * leftoverDumpMult
		cost := qLeft * domain.FeePoly.ApplyCost(leg.PLimit)
		proceeds := qLeft * domain.FeePoly.ApplyProceeds(exit)
		pnlLeft += proceeds - cost
	}

	return &Settlement{
		Signal:   sig,
		QFill:    qFill,
		QSet:     qSet,
		SetRatio: domain.SetRatio(qSet, sig.QReq),
		PnLSet:   pnlSet,
		PnLLeft:  pnlLeft,
		PnLTotal: pnlSet + pnlLeft,
	}
}
