package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Pings must be answered by the same goroutine that relays capture events;
// interleaving both over one connection exercises that path.
func TestMonitorRelaysEventsWhileAnsweringPings(t *testing.T) {
	h := NewWSHandler(nil, zerolog.Nop(), nil)
	events := make(chan *redis.Message)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		done := make(chan struct{})
		replies := make(chan interface{}, 8)
		go h.readLoop(conn, zerolog.Nop(), done, replies)
		h.relay(conn, zerolog.Nop(), events, replies, done)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	const rounds = 5
	for i := 0; i < rounds; i++ {
		if err := conn.WriteJSON(map[string]string{"action": "ping"}); err != nil {
			t.Fatalf("ping %d: %v", i, err)
		}
		events <- &redis.Message{Payload: `{"event":"attendance_captured"}`}
	}

	pongs, captures := 0, 0
	deadline := time.Now().Add(5 * time.Second)
	for pongs < rounds || captures < rounds {
		conn.SetReadDeadline(deadline)
		var msg struct {
			Event string `json:"event"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read (pongs=%d, captures=%d): %v", pongs, captures, err)
		}
		switch msg.Event {
		case "pong":
			pongs++
		case "attendance_captured":
			captures++
		default:
			t.Fatalf("unexpected event %q", msg.Event)
		}
	}
}

func TestBuildUpgraderOriginCheck(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/v1/monitor", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	open := buildUpgrader(nil)
	if !open.CheckOrigin(req("https://anywhere.example")) {
		t.Error("empty allow-list should permit any origin")
	}

	restricted := buildUpgrader([]string{"https://monitor.school.example"})
	if !restricted.CheckOrigin(req("HTTPS://MONITOR.SCHOOL.EXAMPLE")) {
		t.Error("origin match should be case-insensitive")
	}
	if restricted.CheckOrigin(req("https://evil.example")) {
		t.Error("unlisted origin accepted")
	}
}
