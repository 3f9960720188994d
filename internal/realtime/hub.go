package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections keyed by the logged-in email and
// fans task events out to the people a transition concerns (the
// assignee and the assigner).
type Hub struct {
	mu             sync.RWMutex
	emailToClients map[string]map[Client]struct{}
}

// NewHub returns an empty hub. The hub is owned by the router setup and
// handed to the handlers that broadcast.
func NewHub() *Hub {
	return &Hub{
		emailToClients: make(map[string]map[Client]struct{}),
	}
}

// Register adds a client under an email.
func (h *Hub) Register(email string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.emailToClients[email]; !ok {
		h.emailToClients[email] = make(map[Client]struct{})
	}
	h.emailToClients[email][client] = struct{}{}
}

// Unregister removes a client; if the email has no more clients, cleans up.
func (h *Hub) Unregister(email string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.emailToClients[email]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.emailToClients, email)
		}
	}
}

// Broadcast sends a message to all clients of one email.
func (h *Hub) Broadcast(email string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.broadcastLocked(email, message)
}

// BroadcastTo sends a message to every listed email, deduplicating so a
// person who is both assignee and assigner gets one copy.
func (h *Hub) BroadcastTo(emails []string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	seen := make(map[string]struct{}, len(emails))
	for _, email := range emails {
		if email == "" {
			continue
		}
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}
		h.broadcastLocked(email, message)
	}
}

func (h *Hub) broadcastLocked(email string, message []byte) {
	// a failed send is cleaned up by the ws handler on its side
	for c := range h.emailToClients[email] {
		c.Send(message)
	}
}
