package messaging

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Hub keeps one live websocket connection per user and pushes new messages
// to online recipients. Delivery is best effort; history lives in the
// database either way.
type Hub struct {
	connections map[int64]*websocket.Conn
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{connections: make(map[int64]*websocket.Conn)}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, ok := h.connections[userID]; ok && old != nil {
		_ = old.Close()
	}
	h.connections[userID] = conn
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conn, ok := h.connections[userID]; ok && conn != nil {
		_ = conn.Close()
		delete(h.connections, userID)
	}
}

func (h *Hub) SendToUser(userID int64, payload interface{}) bool {
	h.mutex.RLock()
	conn, ok := h.connections[userID]
	h.mutex.RUnlock()

	if !ok || conn == nil {
		return false
	}
	if err := conn.WriteJSON(payload); err != nil {
		h.Unregister(userID)
		return false
	}
	return true
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	_, ok := h.connections[userID]
	return ok
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, conn := range h.connections {
		if conn != nil {
			_ = conn.Close()
		}
		delete(h.connections, userID)
	}
}
