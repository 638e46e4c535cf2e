package server

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/pokerroom/internal/registry"
	"github.com/lox/pokerroom/internal/table"
)

// Server owns the websocket transport: upgrading connections, routing client
// actions into table engines and fanning engine events back out via per-table
// hubs.
type Server struct {
	registry *registry.Registry
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	hubs map[string]*Hub
}

// New creates a transport server. AttachRegistry must be called before any
// connection is accepted; the split exists because the registry needs the
// server's sink factory at construction time.
func New(logger *log.Logger) *Server {
	return &Server{
		logger: logger.WithPrefix("server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		hubs: make(map[string]*Hub),
	}
}

// AttachRegistry wires the table registry in
func (s *Server) AttachRegistry(r *registry.Registry) { s.registry = r }

// SinkFor returns the fan-out hub for a table, creating it on first use. It
// satisfies registry.SinkFactory.
func (s *Server) SinkFor(tableID string) table.Sink {
	return s.hubFor(tableID)
}

func (s *Server) hubFor(tableID string) *Hub {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hubs[tableID]
	if !ok {
		h = NewHub(tableID, s.logger)
		s.hubs[tableID] = h
	}
	return h
}

// HandleWS upgrades an HTTP request to a websocket session
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	c := NewConnection(conn, s, s.logger)
	c.Start()
}

// performAction routes a parsed client action into the table engine. Hub
// membership is kept in step with joins and leaves so targeted events such as
// hole cards reach the player from the first hand on.
func (s *Server) performAction(c *Connection, actionType table.ActionType, msg *ClientMessage) error {
	engine, ok := s.registry.Get(msg.TableID)
	if !ok {
		return registry.ErrTableNotFound
	}

	hub := s.hubFor(msg.TableID)
	wasJoined := c.isJoined(msg.TableID)
	if actionType == table.ActionJoin {
		hub.subscribe(c)
	}

	err := engine.PerformAction(table.Action{
		Type:     actionType,
		PlayerID: c.PlayerID(),
		Slot:     msg.Slot,
		Value:    msg.Value,
		Enabled:  msg.Enabled,
	})

	switch {
	case actionType == table.ActionJoin && err != nil && !wasJoined:
		hub.unsubscribe(c)
	case actionType == table.ActionJoin && err == nil:
		c.markJoined(msg.TableID)
	case actionType == table.ActionLeave && err == nil:
		hub.unsubscribe(c)
		c.markLeft(msg.TableID)
	}
	return err
}

// dropConnection cleans up after a closed session. Every table the player had
// joined sees a disconnect, which the engine treats as a leave.
func (s *Server) dropConnection(c *Connection) {
	playerID := c.PlayerID()
	for _, tableID := range c.joinedTables() {
		if engine, ok := s.registry.Get(tableID); ok {
			if err := engine.PerformAction(table.Action{Type: table.ActionDisconnect, PlayerID: playerID}); err != nil {
				s.logger.Debug("disconnect cleanup", "table", tableID, "player", playerID, "error", err)
			}
		}
		s.hubFor(tableID).unsubscribe(c)
	}
	if playerID != "" {
		s.logger.Info("connection dropped", "player", playerID)
	}
}
