// Package feed streams market trades from the public CLOB websocket.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"polymarket-shadow-lab/internal/domain"
)

// Config configures websocket client behavior.
type Config struct {
	// Endpoint is the market-channel websocket URL.
	Endpoint string
	// ReconnectDelay is initial delay before a reconnect attempt.
	ReconnectDelay time.Duration
	// MaxReconnectDelay caps the reconnect backoff.
	MaxReconnectDelay time.Duration
	// PingInterval is the interval for sending ping frames.
	PingInterval time.Duration
	// ReadTimeout is the per-message read deadline.
	ReadTimeout time.Duration
	// WriteTimeout is the write deadline for control and subscribe frames.
	WriteTimeout time.Duration
}

// DefaultConfig returns default feed configuration for endpoint.
func DefaultConfig(endpoint string) Config {
	return Config{
		Endpoint:          endpoint,
		ReconnectDelay:    1 * time.Second,
		MaxReconnectDelay: 30 * time.Second,
		PingInterval:      30 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// Client subscribes to the market channel for a set of asset IDs and pushes
// decoded trade ticks to an output channel. Disconnects are retried with
// capped exponential backoff until the context is cancelled.
type Client struct {
	config   Config
	assetIDs []string

	// onReconnect, when set, is called before each reconnect attempt.
	onReconnect func()
}

// NewClient creates a feed client for the given asset IDs.
func NewClient(config Config, assetIDs []string) *Client {
	return &Client{config: config, assetIDs: assetIDs}
}

// WithReconnectHook registers a callback invoked on each reconnect attempt.
func (c *Client) WithReconnectHook(fn func()) *Client {
	c.onReconnect = fn
	return c
}

// Run streams ticks into out until ctx is cancelled. Returns nil on
// cancellation; connection errors trigger reconnects, not returns.
func (c *Client) Run(ctx context.Context, out chan<- domain.TradeTick) error {
	delay := c.config.ReconnectDelay

	for {
		err := c.runConn(ctx, out)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil && c.onReconnect != nil {
			c.onReconnect()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.config.MaxReconnectDelay {
			delay = c.config.MaxReconnectDelay
		}
	}
}

// runConn dials, subscribes and reads messages until the connection fails
// or ctx is cancelled.
func (c *Client) runConn(ctx context.Context, out chan<- domain.TradeTick) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}

	conn, _, err := dialer.DialContext(ctx, c.config.Endpoint, nil)
	if err != nil {
		return fmt.Errorf("websocket dial: %w", err)
	}
	defer conn.Close()

	if err := c.subscribe(conn); err != nil {
		return err
	}

	// Close the connection when ctx is cancelled to unblock ReadMessage.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	pingTicker := time.NewTicker(c.config.PingInterval)
	defer pingTicker.Stop()
	go func() {
		for {
			select {
			case <-pingTicker.C:
				deadline := time.Now().Add(c.config.WriteTimeout)
				if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if err := conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout)); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("websocket read: %w", err)
		}

		ticks, err := parseTicks(payload)
		if err != nil {
			// Unknown payloads are tolerated; the channel also carries
			// book snapshots we do not consume.
			continue
		}

		for _, tick := range ticks {
			select {
			case out <- tick:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func (c *Client) subscribe(conn *websocket.Conn) error {
	req := subscribeRequest{Type: "market", AssetsIDs: c.assetIDs}
	if err := conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := conn.WriteJSON(req); err != nil {
		return fmt.Errorf("subscribe market channel: %w", err)
	}
	return nil
}
