package websocket

import (
	"encoding/json"
	"sync"

	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/rs/zerolog"
)

const queueSize = 256

// Hub fans analysis progress events out to connected dashboards.
// The most recent event is replayed to dashboards that connect mid-run.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  []byte

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	logger zerolog.Logger
}

// NewHub creates a new Hub
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, queueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With().Str("component", "ws_hub").Logger(),
	}
}

// Run processes registrations and broadcasts until the process exits
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.add(c)
		case c := <-h.unregister:
			h.remove(c, "client disconnected")
		case message := <-h.broadcast:
			h.fanOut(message)
		}
	}
}

// Broadcast queues message for every client without blocking.
// When the queue is full the message is dropped.
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		metrics.Get().RecordWebSocketError()
		h.logger.Warn().Int("queue_size", queueSize).Msg("broadcast queue full, dropping event")
	}
}

// BroadcastJSON marshals event and broadcasts it
func (h *Hub) BroadcastJSON(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal progress event")
		return
	}
	h.Broadcast(data)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	if h.latest != nil {
		select {
		case c.send <- h.latest:
		default:
		}
	}

	metrics.Get().RecordWebSocketConnect()
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg("client connected")
}

func (h *Hub) remove(c *Client, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c, reason)
}

// dropLocked closes c's queue once; callers hold mu
func (h *Hub) dropLocked(c *Client, reason string) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	metrics.Get().RecordWebSocketDisconnect()
	h.logger.Info().
		Str("client_id", c.id).
		Int("total_clients", len(h.clients)).
		Msg(reason)
}

func (h *Hub) fanOut(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = message
	for c := range h.clients {
		select {
		case c.send <- message:
			metrics.Get().RecordWebSocketMessage()
		default:
			h.dropLocked(c, "client too slow, closing connection")
		}
	}
}
