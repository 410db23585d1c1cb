package ws

import (
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"saverbot.ai/internal/worldapi"
)

func TestFeed_BroadcastReachesObserver(t *testing.T) {
	srv := NewServer(log.New(io.Discard, "", 0))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// The hub registers the client inside the handler goroutine; wait for
	// it to show up before broadcasting.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.clients)
		srv.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("observer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.Sink().Emit(worldapi.Event{"t": 7, "type": worldapi.EventTick, "state": "SAVING"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var ev map[string]any
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev["type"] != worldapi.EventTick || ev["state"] != "SAVING" {
		t.Fatalf("event: got %v", ev)
	}
}

func TestFeed_CloseTearsDownObservers(t *testing.T) {
	srv := NewServer(log.New(io.Discard, "", 0))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.Lock()
		n := len(srv.clients)
		srv.mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("observer never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	srv.Close()

	// The write loop closes the connection; the observer's next read fails.
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("read succeeded after server close")
	}

	srv.mu.Lock()
	n := len(srv.clients)
	srv.mu.Unlock()
	if n != 0 {
		t.Fatalf("clients after close: got %d want 0", n)
	}

	// Dropped on the floor, never a send on a closed channel.
	srv.Broadcast(worldapi.Event{"t": 1})
	srv.Close()
}

func TestFeed_BroadcastWithNoObserversIsCheap(t *testing.T) {
	srv := NewServer(log.New(io.Discard, "", 0))
	// Must not block or panic.
	for i := 0; i < 100; i++ {
		srv.Broadcast(worldapi.Event{"t": i})
	}
}
