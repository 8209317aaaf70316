package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// ProgressClient is one websocket connection for a user. A user may have
// several open at once (phone + web).
type ProgressClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// ProgressHub fans daily-totals updates out to every socket a user has open.
type ProgressHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*ProgressClient]struct{}
}

func NewProgressHub() *ProgressHub {
	return &ProgressHub{clients: make(map[uint]map[*ProgressClient]struct{})}
}

func (h *ProgressHub) Register(c *ProgressClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*ProgressClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *ProgressHub) Unregister(c *ProgressClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *ProgressHub) Broadcast(userID uint, payload any) {
	msg, _ := json.Marshal(payload)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
