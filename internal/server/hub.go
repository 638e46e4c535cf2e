package server

import (
	"encoding/json"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerroom/internal/table"
)

// Hub fans one table's events out to its subscribed connections. It is the
// table.Sink the registry attaches to each engine, so Emit is called with the
// engine lock held and must never block or call back in.
type Hub struct {
	tableID string
	logger  *log.Logger

	mu   sync.RWMutex
	subs map[*Connection]struct{}
}

// NewHub creates a hub for a table
func NewHub(tableID string, logger *log.Logger) *Hub {
	return &Hub{
		tableID: tableID,
		logger:  logger.WithPrefix("hub"),
		subs:    make(map[*Connection]struct{}),
	}
}

func (h *Hub) subscribe(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs[c] = struct{}{}
}

func (h *Hub) unsubscribe(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, c)
}

func (h *Hub) subscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Emit implements table.Sink. The event is marshalled once and handed to each
// subscriber's send buffer; a targeted event only reaches the named players.
func (h *Hub) Emit(ev table.Event) {
	data, err := json.Marshal(eventMessage(h.tableID, ev))
	if err != nil {
		h.logger.Error("event marshal failed", "table", h.tableID, "type", ev.Type, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subs {
		if ev.Targets != nil && !targeted(ev.Targets, c.PlayerID()) {
			continue
		}
		c.trySend(data)
	}
}

func targeted(targets []string, playerID string) bool {
	for _, id := range targets {
		if id == playerID {
			return true
		}
	}
	return false
}
