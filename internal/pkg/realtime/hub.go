package realtime

import (
	"encoding/json"
	"sync"

	"github.com/incampus/backend/internal/pkg/logger"
)

// Event is a message pushed to a user's live connections
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data,omitempty"`
}

// Hub tracks the live websocket connections of each user and fans events out
// to them. A user may hold several connections at once (multiple tabs or
// devices) and every one of them receives each event.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]map[*Client]bool
	closed  bool
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]map[*Client]bool),
	}
}

// Register adds a client to its user's connection set
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		close(client.send)
		return
	}

	conns, ok := h.clients[client.userID]
	if !ok {
		conns = make(map[*Client]bool)
		h.clients[client.userID] = conns
	}
	conns[client] = true

	logger.Debug().Int64("userId", client.userID).Int("connections", len(conns)).Msg("Websocket client registered")
}

// Unregister removes a client and closes its send channel
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}

	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}
}

// Publish delivers an event to every live connection of the user. Delivery is
// best effort: a connection whose buffer is full is skipped rather than
// blocking the caller.
func (h *Hub) Publish(userID int64, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event", event.Name).Msg("Failed to encode realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			logger.Warn().Int64("userId", userID).Msg("Dropping realtime event, client buffer full")
		}
	}
}

// ConnectionCount reports the number of live connections for a user
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Stop closes every connection and refuses new registrations
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for userID, conns := range h.clients {
		for client := range conns {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}
