package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"stablecoin-core/internal/domain"
)

const (
	// Slow subscribers are dropped rather than allowed to block the
	// engine's post-commit publish path.
	clientBufferSize = 64

	writeWait = 10 * time.Second
)

// eventMessage is the wire form of one engine event on the stream.
type eventMessage struct {
	Type    string          `json:"type"`
	Mint    string          `json:"mint"`
	At      int64           `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans committed engine events out to WebSocket subscribers. It
// implements engine.EventPublisher.
type Hub struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[chan []byte]struct{}
	closed  bool
}

// NewHub creates a Hub.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[chan []byte]struct{}),
	}
}

// Publish broadcasts one committed event to all subscribers. Subscribers
// whose buffers are full miss the event; the durable log in storage is the
// authoritative record.
func (h *Hub) Publish(e *domain.Event) {
	msg, err := json.Marshal(eventMessage{
		Type:    string(e.Type),
		Mint:    e.Mint,
		At:      e.At,
		Payload: json.RawMessage(e.Payload),
	})
	if err != nil {
		h.logger.Printf("marshal event %s: %v", e.Type, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- msg:
		default:
		}
	}
}

// ServeHTTP upgrades the connection and streams events until the client
// disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("websocket upgrade: %v", err)
		return
	}

	ch := make(chan []byte, clientBufferSize)
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[ch] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, ch)
		h.mu.Unlock()
		conn.Close()
	}()

	// Drain reads so close frames and pings are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg := <-ch:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

// Close disconnects all subscribers and rejects new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.clients {
		delete(h.clients, ch)
	}
}
