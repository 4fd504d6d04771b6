// Package shadow settles pending signals against observed market trades and
// produces shadow log records.
package shadow

import (
	"math"
	"time"

	"polymarket-shadow-lab/internal/domain"
)

// TradeStore is an in-memory retention buffer for shadow volume queries.
// Correctness first: O(n) scans are acceptable at this scale.
type TradeStore struct {
	retentionMs int64
	trades      []domain.TradeTick

	nowMs func() int64
}

// NewTradeStore creates a store that retains trades for retentionMs.
func NewTradeStore(retentionMs int64) *TradeStore {
	return &TradeStore{
		retentionMs: retentionMs,
		nowMs:       func() int64 { return time.Now().UnixMilli() },
	}
}

// WithClock sets a custom clock for deterministic tests.
func (s *TradeStore) WithClock(nowMs func() int64) *TradeStore {
	s.nowMs = nowMs
	return s
}

// Push appends a tick and trims expired ones.
func (s *TradeStore) Push(t domain.TradeTick) {
	if t.TokenID == "" {
		return
	}
	s.trades = append(s.trades, t)
	s.trim(s.nowMs())
}

// VolumeAtOrBetter sums the size of finite trades for (marketID, tokenID)
// within [startMs, endMs] whose price is at or below priceLimit.
func (s *TradeStore) VolumeAtOrBetter(marketID, tokenID string, startMs, endMs int64, priceLimit float64) float64 {
	if marketID == "" || tokenID == "" {
		return 0
	}
	if startMs > endMs {
		return 0
	}
	if math.IsNaN(priceLimit) || math.IsInf(priceLimit, 0) {
		return 0
	}

	var volume float64
	for _, t := range s.trades {
		if t.MarketID != marketID || t.TokenID != tokenID {
			continue
		}
		if t.TsMs < startMs || t.TsMs > endMs {
			continue
		}
		if math.IsNaN(t.Price) || math.IsInf(t.Price, 0) || math.IsNaN(t.Size) || math.IsInf(t.Size, 0) {
			continue
		}
		if t.Price <= priceLimit {
			volume += t.Size
		}
	}
	return volume
}

func (s *TradeStore) trim(nowMs int64) {
	if s.retentionMs <= 0 {
		s.trades = s.trades[:0]
		return
	}

	cutoff := nowMs - s.retentionMs
	i := 0
	for i < len(s.trades) && s.trades[i].TsMs < cutoff {
		i++
	}
	if i > 0 {
		s.trades = append(s.trades[:0], s.trades[i:]...)
	}
}
