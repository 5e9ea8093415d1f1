// Package feed provides the websocket client for the shared store's realtime
// row-change stream. The subscription survives disconnects: the client redials
// with backoff and resubscribes, and the periodic refresh jobs compensate for
// events missed while offline.
package feed

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"expeditor/internal/core/ports"

	"github.com/gorilla/websocket"
)

const (
	readLimit     = 512 * 1024
	pongWait      = 60 * time.Second
	pingPeriod    = 30 * time.Second
	writeWait     = 10 * time.Second
	maxBackoff    = 30 * time.Second
	eventsBufSize = 256
)

// subscribeRequest is the payload sent after connecting to select tables.
type subscribeRequest struct {
	Tables []string `json:"tables"`
}

// WebsocketFeed implements EventFeed over a websocket connection to the
// shared store's realtime endpoint.
type WebsocketFeed struct {
	url    string
	logger *slog.Logger
}

// NewWebsocketFeed creates a feed client for the given realtime endpoint URL.
func NewWebsocketFeed(url string, logger *slog.Logger) *WebsocketFeed {
	return &WebsocketFeed{
		url:    url,
		logger: logger.With("component", "event_feed"),
	}
}

// Subscribe opens the feed for the given tables. The returned channel is
// closed when ctx is canceled. Events arriving while the subscriber is slow
// are dropped rather than blocking the read loop.
func (f *WebsocketFeed) Subscribe(ctx context.Context, tables ...string) (<-chan ports.RowEvent, error) {
	events := make(chan ports.RowEvent, eventsBufSize)

	go f.run(ctx, tables, events)

	return events, nil
}

// run redials until ctx is canceled, doubling the backoff on consecutive
// failures and resetting it after a session that delivered events.
func (f *WebsocketFeed) run(ctx context.Context, tables []string, events chan<- ports.RowEvent) {
	defer close(events)

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, f.url, nil)
		if err != nil {
			f.logger.Warn("feed dial failed", "url", f.url, "error", err, "retry_in", backoff)
			if !sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}

		delivered, err := f.session(ctx, conn, tables, events)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}

		if err != nil {
			f.logger.Warn("feed session ended", "error", err)
		}
		if delivered {
			backoff = time.Second
		} else {
			backoff = min(backoff*2, maxBackoff)
		}

		if !sleep(ctx, backoff) {
			return
		}
	}
}

// session subscribes and pumps events until the connection breaks or ctx is
// canceled. Reports whether at least one event was delivered.
func (f *WebsocketFeed) session(
	ctx context.Context,
	conn *websocket.Conn,
	tables []string,
	events chan<- ports.RowEvent,
) (bool, error) {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(subscribeRequest{Tables: tables}); err != nil {
		return false, err
	}

	f.logger.Info("feed subscribed", "tables", tables)

	// The ping loop doubles as the ctx watcher: canceling ctx closes the
	// connection, which unblocks ReadMessage.
	pingDone := make(chan struct{})
	defer close(pingDone)
	go f.pingLoop(ctx, conn, pingDone)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	delivered := false
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return delivered, err
			}
			return delivered, nil
		}

		var event ports.RowEvent
		if err = json.Unmarshal(message, &event); err != nil {
			f.logger.Warn("feed message is not a row event", "error", err)
			continue
		}

		select {
		case events <- event:
			delivered = true
		default:
			f.logger.Warn("feed subscriber is slow, dropping event",
				"table", event.Table, "operation", event.Operation)
		}
	}
}

// pingLoop keeps the connection alive and closes it when ctx is canceled.
func (f *WebsocketFeed) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = conn.Close()
				return
			}
		case <-ctx.Done():
			_ = conn.Close()
			return
		case <-done:
			return
		}
	}
}

// sleep waits for d or until ctx is canceled. Reports whether the full wait
// elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
