package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Ajmalajjuca/Bite-check/models"

	"github.com/gorilla/websocket"
)

// WSClient is one open websocket. Writes go through WriteMessage, which
// serializes them since a conn allows a single concurrent writer.
type WSClient struct {
	UserID string
	Conn   *websocket.Conn

	writeMu sync.Mutex
}

func (c *WSClient) WriteMessage(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.Conn.WriteMessage(messageType, data)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
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

func (h *RealtimeHub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *RealtimeHub) Broadcast(userID string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		_ = c.WriteMessage(websocket.TextMessage, msg)
	}
}

// CaloriesUpdated is the reload signal sent after a successful add.
type CaloriesUpdated struct {
	Kind     string `json:"kind"`
	Date     string `json:"date"`
	Calories int    `json:"calories"`
	Added    int    `json:"added"`
}

func (h *RealtimeHub) NotifyCaloriesUpdated(rec *models.DailyCalorieRecord, added int) {
	h.Broadcast(rec.UserID, CaloriesUpdated{
		Kind:     "calories.updated",
		Date:     rec.Date,
		Calories: rec.Calories,
		Added:    added,
	})
}
