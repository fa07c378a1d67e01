package feed

import (
	"sync"

	"tourquote/internal/domain"

	"github.com/gorilla/websocket"
)

// Hub fans freshly computed estimate totals out to websocket subscribers,
// keyed by estimate ID. A repricing pass pushes through NotifyTotals.
type Hub struct {
	subscribers map[int64]map[*websocket.Conn]bool
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[int64]map[*websocket.Conn]bool),
	}
}

func (h *Hub) Subscribe(estimateID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.subscribers[estimateID] == nil {
		h.subscribers[estimateID] = make(map[*websocket.Conn]bool)
	}
	h.subscribers[estimateID][conn] = true
}

func (h *Hub) Unsubscribe(estimateID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if conns, exists := h.subscribers[estimateID]; exists {
		_ = conn.Close()
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.subscribers, estimateID)
		}
	}
}

type totalsMessage struct {
	Type       string                `json:"type"`
	EstimateID int64                 `json:"estimate_id"`
	Totals     domain.EstimateTotals `json:"totals"`
}

// NotifyTotals pushes totals to every subscriber of the estimate. Dead
// connections are dropped on write failure.
func (h *Hub) NotifyTotals(estimateID int64, totals domain.EstimateTotals) {
	h.mutex.RLock()
	conns := make([]*websocket.Conn, 0, len(h.subscribers[estimateID]))
	for conn := range h.subscribers[estimateID] {
		conns = append(conns, conn)
	}
	h.mutex.RUnlock()

	msg := totalsMessage{Type: "totals", EstimateID: estimateID, Totals: totals}
	for _, conn := range conns {
		if err := conn.WriteJSON(msg); err != nil {
			h.Unsubscribe(estimateID, conn)
		}
	}
}

func (h *Hub) SubscriberCount(estimateID int64) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers[estimateID])
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for estimateID, conns := range h.subscribers {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.subscribers, estimateID)
	}
}
