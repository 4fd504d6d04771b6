// Command record runs the shadow recorder daemon: it streams market trades
// from the CLOB websocket, reads strategy signals as JSON lines, settles each
// signal after its window elapses and appends one row per signal to the
// shadow log CSV.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"polymarket-shadow-lab/internal/domain"
	"polymarket-shadow-lab/internal/feed"
	"polymarket-shadow-lab/internal/observability"
	"polymarket-shadow-lab/internal/shadow"
	"polymarket-shadow-lab/internal/shadowlog"
)

func main() {
	endpoint := flag.String("endpoint", "wss://ws-subscriptions-clob.polymarket.com/ws/market", "Market-channel websocket URL")
	assets := flag.String("assets", "", "Comma-separated CLOB token IDs to subscribe to")
	signalsPath := flag.String("signals", "-", "JSON-lines signal source ('-' for stdin)")
	outPath := flag.String("out", "shadow_log.csv", "Shadow log CSV path")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus listen address (empty disables)")
	windowMs := flag.Int64("window-ms", 1500, "Settlement window after the signal, milliseconds")
	retentionMs := flag.Int64("retention-ms", 60000, "Trade store retention, milliseconds")
	fillShareLiquid := flag.Float64("fill-share-liquid", 0.5, "Fill share for the Liquid bucket")
	fillShareThin := flag.Float64("fill-share-thin", 0.1, "Fill share for the Thin bucket")
	flag.Parse()

	if *assets == "" {
		fmt.Fprintln(os.Stderr, "Error: --assets is required")
		flag.Usage()
		os.Exit(2)
	}
	assetIDs := strings.Split(*assets, ",")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := observability.NewMetrics("")
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", observability.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Printf("metrics server: %v", err)
			}
		}()
	}

	appender, err := shadowlog.OpenAppender(*outPath, shadowlog.ShadowHeader)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening shadow log: %v\n", err)
		os.Exit(1)
	}

	settler := shadow.NewSettler(shadow.Config{
		WindowStartMs:    0,
		WindowEndMs:      *windowMs,
		TradeRetentionMs: *retentionMs,
		FillShareLiquid:  *fillShareLiquid,
		FillShareThin:    *fillShareThin,
	}, func(s *shadow.Settlement) error {
		if err := appender.Append(settlementRow(s)); err != nil {
			return err
		}
		m.SignalsSettled.Inc()
		m.RowsAppended.Inc()
		m.PendingSignals.Dec()
		if s.PnLTotal >= 0 {
			m.SettlementPnL.Add(s.PnLTotal)
		} else {
			m.SettlementPnL.Add(-s.PnLTotal)
		}
		m.LastAppendUnixMs.Set(float64(time.Now().UnixMilli()))
		return nil
	})

	feedOut := make(chan domain.TradeTick, 1024)
	trades := make(chan domain.TradeTick, 1024)
	signals := make(chan domain.Signal, 64)

	client := feed.NewClient(feed.DefaultConfig(*endpoint), assetIDs).
		WithReconnectHook(func() { m.FeedReconnects.Inc() })

	go func() {
		if err := client.Run(ctx, feedOut); err != nil {
			log.Printf("feed: %v", err)
		}
	}()

	// Count ticks between the feed and the settler.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-feedOut:
				m.TradeTicksReceived.Inc()
				select {
				case trades <- t:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go readSignals(ctx, *signalsPath, signals, m)

	log.Printf("recorder started: %d assets, log %s", len(assetIDs), *outPath)

	if err := settler.Run(ctx, trades, signals); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error in settlement loop: %v\n", err)
		appender.Close()
		os.Exit(1)
	}

	if err := appender.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing shadow log: %v\n", err)
		os.Exit(1)
	}
	log.Printf("recorder stopped")
}

// readSignals decodes JSON-lines signals from path (or stdin) and queues
// them for settlement. Undecodable lines are logged and skipped.
func readSignals(ctx context.Context, path string, out chan<- domain.Signal, m *observability.Metrics) {
	var src *os.File
	if path == "-" {
		src = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			log.Printf("open signals: %v", err)
			return
		}
		defer f.Close()
		src = f
	}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var sig domain.Signal
		if err := json.Unmarshal([]byte(line), &sig); err != nil {
			log.Printf("skip signal line: %v", err)
			continue
		}
		select {
		case out <- sig:
			m.SignalsQueued.Inc()
			m.PendingSignals.Inc()
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("read signals: %v", err)
	}
}

// settlementRow formats one settlement in ShadowHeader column order.
func settlementRow(s *shadow.Settlement) []string {
	return []string{
		strconv.FormatInt(s.Signal.TsSignalMs, 10),
		strconv.FormatUint(s.Signal.SignalID, 10),
		s.Signal.MarketID,
		s.Signal.Strategy,
		s.Signal.Bucket,
		strconv.FormatFloat(s.Signal.QReq, 'f', 6, 64),
		strconv.FormatFloat(s.QSet, 'f', 6, 64),
		strconv.FormatFloat(s.SetRatio, 'f', 4, 64),
		strconv.FormatFloat(s.PnLSet, 'f', 6, 64),
		strconv.FormatFloat(s.PnLLeft, 'f', 6, 64),
		strconv.FormatFloat(s.PnLTotal, 'f', 6, 64),
	}
}
