package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement
type ClientInterface interface {
	ID() string
	EventID() uuid.UUID
	Send(data []byte) error
	Close() error
}

// Hub manages WebSocket connections organized by the event page they watch.
// It is safe for concurrent use.
type Hub struct {
	// events maps event ID to a map of client ID to client
	events map[uuid.UUID]map[string]ClientInterface
	mu     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		events: make(map[uuid.UUID]map[string]ClientInterface),
	}
}

// Register adds a client to the hub under its event
func (h *Hub) Register(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.EventID()
	clientID := client.ID()

	if h.events[eventID] == nil {
		h.events[eventID] = make(map[string]ClientInterface)
	}
	h.events[eventID][clientID] = client

	log.Debug().
		Str("event_id", eventID.String()).
		Str("client_id", clientID).
		Msg("WebSocket client registered")
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client ClientInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	eventID := client.EventID()
	clientID := client.ID()

	if clients, ok := h.events[eventID]; ok {
		if _, exists := clients[clientID]; exists {
			delete(clients, clientID)

			// Clean up empty event maps
			if len(clients) == 0 {
				delete(h.events, eventID)
			}

			log.Debug().
				Str("event_id", eventID.String()).
				Str("client_id", clientID).
				Msg("WebSocket client unregistered")
		}
	}
}

// Broadcast sends a notice to all clients watching a specific event
func (h *Hub) Broadcast(eventID uuid.UUID, notice Notice) {
	data, err := notice.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("event_id", eventID.String()).
			Str("notice_type", notice.Type).
			Msg("Failed to serialize notice")
		return
	}

	h.mu.RLock()
	clients, ok := h.events[eventID]
	if !ok || len(clients) == 0 {
		h.mu.RUnlock()
		return
	}

	// Copy clients to avoid holding lock during send
	clientsCopy := make([]ClientInterface, 0, len(clients))
	for _, client := range clients {
		clientsCopy = append(clientsCopy, client)
	}
	h.mu.RUnlock()

	for _, client := range clientsCopy {
		go func(c ClientInterface) {
			if err := c.Send(data); err != nil {
				log.Warn().
					Err(err).
					Str("event_id", eventID.String()).
					Str("client_id", c.ID()).
					Msg("Failed to send to client")
			}
		}(client)
	}

	log.Debug().
		Str("event_id", eventID.String()).
		Str("notice_type", notice.Type).
		Int("client_count", len(clientsCopy)).
		Msg("Broadcast notice")
}

// ClientCount returns the number of clients watching an event
func (h *Hub) ClientCount(eventID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.events[eventID]; ok {
		return len(clients)
	}
	return 0
}

// TotalClientCount returns the total number of connected clients
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.events {
		total += len(clients)
	}
	return total
}
