package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"invoice_idor/internal/models"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000

	wsTypeEvents = "events"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// accessFeed tracks which events a single connection has already received.
type accessFeed struct {
	events service.EventLog
	seen   map[string]struct{}
}

// next returns events not sent yet, in log order.
func (f *accessFeed) next(ctx context.Context) ([]models.AccessEvent, error) {
	all, err := f.events.List(ctx, service.LogFilter{})
	if err != nil {
		return nil, err
	}
	fresh := make([]models.AccessEvent, 0, len(all))
	for _, e := range all {
		if _, ok := f.seen[e.EventID]; ok {
			continue
		}
		f.seen[e.EventID] = struct{}{}
		fresh = append(fresh, e)
	}
	return fresh, nil
}

// wsAccessLog streams the access log: the whole log first, then each tick
// whatever arrived since.
func (h *Handler) wsAccessLog(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	feed := &accessFeed{events: h.services.EventLog, seen: make(map[string]struct{})}

	if err := h.sendEvents(ctx, conn, feed, true); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendEvents(ctx, conn, feed, false); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendEvents writes unseen events. Empty batches are skipped except for the
// initial message, which always goes out so clients know the feed is live.
func (h *Handler) sendEvents(ctx context.Context, conn *websocket.Conn, feed *accessFeed, initial bool) error {
	fresh, err := feed.next(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_access_log_failed", "err", err)
		}
		return err
	}
	if len(fresh) == 0 && !initial {
		return nil
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: wsTypeEvents, Data: fresh})
}
