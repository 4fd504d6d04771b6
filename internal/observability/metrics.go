// Package observability provides Prometheus metrics for the recorder daemon.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the recorder.
type Metrics struct {
	// Feed metrics
	TradeTicksReceived prometheus.Counter
	FeedReconnects     prometheus.Counter

	// Settlement metrics
	SignalsQueued  prometheus.Counter
	SignalsSettled prometheus.Counter
	RowsAppended   prometheus.Counter
	PendingSignals prometheus.Gauge
	SettlementPnL  prometheus.Counter

	// Lifecycle
	LastAppendUnixMs prometheus.Gauge
}

// NewMetrics creates a Metrics instance with all metrics registered under
// namespace (defaults to polymarket_shadow_lab).
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "polymarket_shadow_lab"
	}

	return &Metrics{
		TradeTicksReceived: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "trade_ticks_received_total",
			Help:      "Total number of trade ticks received from the market feed",
		}),
		FeedReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "feed",
			Name:      "reconnects_total",
			Help:      "Total number of websocket reconnect attempts",
		}),
		SignalsQueued: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "signals_queued_total",
			Help:      "Total number of signals queued for settlement",
		}),
		SignalsSettled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "signals_settled_total",
			Help:      "Total number of signals settled",
		}),
		RowsAppended: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "rows_appended_total",
			Help:      "Total number of rows appended to the shadow log",
		}),
		PendingSignals: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "pending_signals",
			Help:      "Number of signals currently awaiting settlement",
		}),
		SettlementPnL: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "settlement_pnl_abs_total",
			Help:      "Cumulative absolute settled PnL, a volume proxy",
		}),
		LastAppendUnixMs: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "shadow",
			Name:      "last_append_unix_ms",
			Help:      "Timestamp of the last shadow log append",
		}),
	}
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
