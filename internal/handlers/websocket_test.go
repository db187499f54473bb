package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"invoice_idor/internal/models"
	"invoice_idor/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", 1 * time.Second},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=20s", 1 * time.Second},
		{"interval_negative", "/ws?interval=-1s", 1 * time.Second},
		{"interval_ms_too_large", "/ws?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/ws?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

func TestAccessFeed_SkipsSeenEvents(t *testing.T) {
	logs := &mockEventLog{resp: []models.AccessEvent{{EventID: "a"}, {EventID: "b"}}}
	feed := &accessFeed{events: logs, seen: map[string]struct{}{}}
	ctx := context.Background()

	first, err := feed.next(ctx)
	if err != nil || len(first) != 2 {
		t.Fatalf("first batch = %v, %v", first, err)
	}

	logs.resp = append(logs.resp, models.AccessEvent{EventID: "c"})
	second, err := feed.next(ctx)
	if err != nil || len(second) != 1 || second[0].EventID != "c" {
		t.Fatalf("second batch = %v, %v", second, err)
	}

	logs.err = errors.New("boom")
	if _, err := feed.next(ctx); err == nil {
		t.Fatalf("expected error from log")
	}
}

// --- websocket integration tests ---

type eventsEnvelope struct {
	Type string               `json:"type"`
	Data []models.AccessEvent `json:"data"`
}

func dialFeed(t *testing.T, s *service.Service, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsAccessLog)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	conn, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial: %v (resp=%v)", err, resp)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) eventsEnvelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env eventsEnvelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read: %v", err)
	}
	return env
}

func TestWebSocket_AccessFeed_InitialAndIncremental(t *testing.T) {
	s := newTestService()
	ctx := context.Background()
	if err := s.EventLog.Record(ctx, models.AccessEvent{Type: models.EventLoginSuccess, UserID: 2, Description: "user bob logged in"}); err != nil {
		t.Fatalf("record: %v", err)
	}

	conn := dialFeed(t, s, "interval_ms=50")

	env := readEnvelope(t, conn)
	if env.Type != wsTypeEvents || len(env.Data) != 1 || env.Data[0].Type != models.EventLoginSuccess {
		t.Fatalf("initial envelope = %+v", env)
	}

	if err := s.EventLog.Record(ctx, models.AccessEvent{
		Type:        models.EventInvoiceView,
		UserID:      2,
		Description: "viewed invoice 1",
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	env = readEnvelope(t, conn)
	if len(env.Data) != 1 || env.Data[0].Type != models.EventInvoiceView {
		t.Fatalf("incremental envelope = %+v", env)
	}
}

func TestWebSocket_AccessFeed_EmptyLogStillAnnounces(t *testing.T) {
	conn := dialFeed(t, newTestService(), "")

	env := readEnvelope(t, conn)
	if env.Type != wsTypeEvents || len(env.Data) != 0 {
		t.Fatalf("initial envelope = %+v", env)
	}
}
