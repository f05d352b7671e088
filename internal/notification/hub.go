package notification

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Notifier delivers realtime payloads to connected clients. Controllers
// depend on this interface so tests can swap in a recording double.
type Notifier interface {
	SendToUser(userID uint, payload interface{})
	SendToUsers(userIDs []uint, payload interface{})
	Broadcast(payload interface{})
}

// Hub keeps the registry of live websocket connections keyed by user id.
// A user may hold several connections (multiple tabs or devices).
type Hub struct {
	mu    sync.RWMutex
	conns map[uint]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[uint]map[*websocket.Conn]struct{})}
}

// Register adds a connection to the registry for the given user.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
	log.Printf("websocket connected: user %d (%d active)", userID, len(h.conns[userID]))
}

// Unregister removes a connection and closes it.
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[userID]; ok {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, userID)
		}
	}
	conn.Close()
	log.Printf("websocket disconnected: user %d", userID)
}

// SendToUser writes the payload to every live connection of one user.
// Connections that fail the write are dropped from the registry.
func (h *Hub) SendToUser(userID uint, payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sendLocked(userID, payload)
}

// SendToUsers delivers the payload once per distinct user id.
func (h *Hub) SendToUsers(userIDs []uint, payload interface{}) {
	seen := make(map[uint]struct{}, len(userIDs))
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		h.sendLocked(id, payload)
	}
}

// Broadcast writes the payload to every connected user.
func (h *Hub) Broadcast(payload interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID := range h.conns {
		h.sendLocked(userID, payload)
	}
}

// ConnectedUsers returns the number of users with at least one live connection.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) sendLocked(userID uint, payload interface{}) {
	set, ok := h.conns[userID]
	if !ok {
		return
	}
	for conn := range set {
		if err := conn.WriteJSON(payload); err != nil {
			log.Printf("websocket write failed for user %d: %v", userID, err)
			conn.Close()
			delete(set, conn)
		}
	}
	if len(set) == 0 {
		delete(h.conns, userID)
	}
}
