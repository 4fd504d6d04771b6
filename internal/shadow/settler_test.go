package shadow

import (
	"math"
	"testing"

	"polymarket-shadow-lab/internal/domain"
)

func testConfig() Config {
	return Config{
		WindowStartMs:    100,
		WindowEndMs:      1_100,
		TradeRetentionMs: 60_000,
		FillShareLiquid:  0.5,
		FillShareThin:    0.1,
	}
}

func binarySignal() domain.Signal {
	return domain.Signal{
		SignalID:   1,
		TsSignalMs: base,
		MarketID:   "mkt",
		Strategy:   domain.StrategyBinary,
		Bucket:     domain.BucketLiquid,
		QReq:       10,
		Legs: []domain.SignalLeg{
			{TokenID: "A", PLimit: 0.49, BestBidAtT0: 0.48},
			{TokenID: "B", PLimit: 0.48, BestBidAtT0: 0.47},
		},
	}
}

func TestSettler_SettlesBinarySignalWithLeftoverPenalty(t *testing.T) {
	var got *Settlement
	now := base
	s := NewSettler(testConfig(), func(st *Settlement) error {
		got = st
		return nil
	}).WithClock(func() int64 { return now })

	s.OnSignal(binarySignal())
	s.OnTrade(domain.TradeTick{TsMs: base + 200, MarketID: "mkt", TokenID: "A", Price: 0.48, Size: 30})
	s.OnTrade(domain.TradeTick{TsMs: base + 200, MarketID: "mkt", TokenID: "B", Price: 0.48, Size: 12})

	// Window not yet elapsed: nothing settles.
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got != nil {
		t.Fatal("settled before window elapsed")
	}

	now = base + 1_100
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if got == nil {
		t.Fatal("signal did not settle after window elapsed")
	}

	// Fill share 0.5: leg A matches 30*0.5=15 capped at 10, leg B 12*0.5=6.
	if math.Abs(got.QFill[0]-10) > 1e-9 || math.Abs(got.QFill[1]-6) > 1e-9 {
		t.Errorf("QFill = %v, want [10 6]", got.QFill)
	}
	if math.Abs(got.QSet-6) > 1e-9 {
		t.Errorf("QSet = %f, want 6", got.QSet)
	}
	if math.Abs(got.SetRatio-0.6) > 1e-9 {
		t.Errorf("SetRatio = %f, want 0.6", got.SetRatio)
	}
	// Dumping the unmatched 4 units of leg A at a discounted bid loses money.
	if got.PnLTotal >= 0 {
		t.Errorf("PnLTotal = %f, want negative with leftover dump penalty", got.PnLTotal)
	}
	if math.Abs(got.PnLTotal-(got.PnLSet+got.PnLLeft)) > 1e-12 {
		t.Errorf("PnLTotal %f != PnLSet %f + PnLLeft %f", got.PnLTotal, got.PnLSet, got.PnLLeft)
	}
}

func TestSettler_DeduplicatesSignalIDs(t *testing.T) {
	var settled int
	now := base
	s := NewSettler(testConfig(), func(*Settlement) error {
		settled++
		return nil
	}).WithClock(func() int64 { return now })

	s.OnSignal(binarySignal())
	s.OnSignal(binarySignal())

	now = base + 2_000
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if settled != 1 {
		t.Errorf("settled %d times, want 1", settled)
	}
}

func TestSettler_NoVolumeMeansZeroSet(t *testing.T) {
	var got *Settlement
	now := base
	s := NewSettler(testConfig(), func(st *Settlement) error {
		got = st
		return nil
	}).WithClock(func() int64 { return now })

	s.OnSignal(binarySignal())
	now = base + 2_000
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	if got.QSet != 0 {
		t.Errorf("QSet = %f, want 0 with no market volume", got.QSet)
	}
	if got.SetRatio != 0 {
		t.Errorf("SetRatio = %f, want 0", got.SetRatio)
	}
	if got.PnLTotal != 0 {
		t.Errorf("PnLTotal = %f, want 0", got.PnLTotal)
	}
}

func TestSettler_ThinBucketUsesThinShare(t *testing.T) {
	var got *Settlement
	now := base
	s := NewSettler(testConfig(), func(st *Settlement) error {
		got = st
		return nil
	}).WithClock(func() int64 { return now })

	sig := binarySignal()
	sig.Bucket = domain.BucketThin
	s.OnSignal(sig)
	s.OnTrade(domain.TradeTick{TsMs: base + 200, MarketID: "mkt", TokenID: "A", Price: 0.48, Size: 30})
	s.OnTrade(domain.TradeTick{TsMs: base + 200, MarketID: "mkt", TokenID: "B", Price: 0.48, Size: 30})

	now = base + 2_000
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}

	// Thin share 0.1: both legs fill 3, q_set 3.
	if math.Abs(got.QSet-3) > 1e-9 {
		t.Errorf("QSet = %f, want 3", got.QSet)
	}
}
