package websocket

import (
	"encoding/json"
	"sync"

	"keepnotes-be/internal/pkg/logger"
	"keepnotes-be/pkg/events"
)

// Hub owns the set of connected clients and fans change events out to them.
type Hub struct {
	// Registered clients, one per connected device or tab.
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": count})
		}
	}
}

// Broadcast serializes a change event and sends it to every client. Slow
// consumers are dropped rather than allowed to stall the feed; their
// unregistration happens outside the read lock so Run never deadlocks.
func (h *Hub) Broadcast(evt events.WireEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		h.logger.Error("Hub", "Failed to marshal event", map[string]interface{}{"error": err})
		return
	}

	var dropped []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			dropped = append(dropped, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range dropped {
		h.logger.Warn("Hub", "Client send buffer full, dropping connection", nil)
		h.unregister <- client
	}
}
