// Package ws streams the agent's event feed to websocket observers. The
// feed is read-only: observers subscribe and watch, they cannot act.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"saverbot.ai/internal/worldapi"
)

type Server struct {
	log *log.Logger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu      sync.Mutex
	closed  bool
	clients map[uint64]chan []byte
}

func NewServer(logger *log.Logger) *Server {
	return &Server{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[uint64]chan []byte),
	}
}

// Sink adapts the server to the controller's event sink.
func (s *Server) Sink() worldapi.EventSink {
	return worldapi.SinkFunc(s.Broadcast)
}

// Broadcast fans ev out to every connected observer. Slow observers drop
// events rather than stall the tick loop.
func (s *Server) Broadcast(ev worldapi.Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, ch := range s.clients {
		select {
		case ch <- b:
		default:
		}
	}
}

// Close disconnects every observer and rejects new subscriptions. Each
// write loop drains its remaining buffer and exits once its channel closes.
func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		id := s.nextID.Add(1)
		out := make(chan []byte, 256)

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			_ = conn.Close()
			return
		}
		s.clients[id] = out
		s.mu.Unlock()

		s.log.Printf("observer %d connected from %s", id, r.RemoteAddr)

		defer func() {
			s.mu.Lock()
			delete(s.clients, id)
			s.mu.Unlock()
			_ = conn.Close()
			s.log.Printf("observer %d disconnected", id)
		}()

		// Drain reads so pings/closes are processed.
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for b := range out {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
		// The channel was closed by Close: say goodbye properly.
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
			time.Now().Add(time.Second))
	}
}
