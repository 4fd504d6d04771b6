package feed

import (
	"encoding/json"
	"fmt"
	"strconv"

	"polymarket-shadow-lab/internal/domain"
)

// subscribeRequest is the market-channel subscription payload.
type subscribeRequest struct {
	Type      string   `json:"type"`
	AssetsIDs []string `json:"assets_ids"`
}

// tradeEvent is the wire shape of a last-trade message on the market
// channel. Numeric fields arrive as strings.
type tradeEvent struct {
	EventType string `json:"event_type"`
	Market    string `json:"market"`
	AssetID   string `json:"asset_id"`
	Price     string `json:"price"`
	Size      string `json:"size"`
	Timestamp string `json:"timestamp"` // Unix ms
}

const eventLastTradePrice = "last_trade_price"

// parseTicks decodes one websocket payload into trade ticks. The server
// sends either a single event object or a batch array; non-trade events
// are skipped.
func parseTicks(payload []byte) ([]domain.TradeTick, error) {
	var events []tradeEvent
	if err := json.Unmarshal(payload, &events); err != nil {
		var single tradeEvent
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, fmt.Errorf("decode feed message: %w", err)
		}
		events = []tradeEvent{single}
	}

	var ticks []domain.TradeTick
	for _, ev := range events {
		if ev.EventType != eventLastTradePrice {
			continue
		}
		tick, err := ev.toTick()
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, tick)
	}
	return ticks, nil
}

func (ev tradeEvent) toTick() (domain.TradeTick, error) {
	tsMs, err := strconv.ParseInt(ev.Timestamp, 10, 64)
	if err != nil {
		return domain.TradeTick{}, fmt.Errorf("parse trade timestamp %q: %w", ev.Timestamp, err)
	}
	price, err := strconv.ParseFloat(ev.Price, 64)
	if err != nil {
		return domain.TradeTick{}, fmt.Errorf("parse trade price %q: %w", ev.Price, err)
	}
	size, err := strconv.ParseFloat(ev.Size, 64)
	if err != nil {
		return domain.TradeTick{}, fmt.Errorf("parse trade size %q: %w", ev.Size, err)
	}

	return domain.TradeTick{
		TsMs:     tsMs,
		MarketID: ev.Market,
		TokenID:  ev.AssetID,
		Price:    price,
		Size:     size,
	}, nil
}
