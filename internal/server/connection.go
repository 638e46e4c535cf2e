package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket session with a client
type Connection struct {
	conn   *websocket.Conn
	send   chan []byte
	srv    *Server
	logger *log.Logger

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	playerID string
	joined   map[string]struct{}
}

// NewConnection wraps an upgraded websocket
func NewConnection(conn *websocket.Conn, srv *Server, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan []byte, 256),
		srv:    srv,
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
		joined: make(map[string]struct{}),
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// PlayerID returns the authenticated player id, empty before AUTH
func (c *Connection) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

func (c *Connection) setPlayerID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = id
}

func (c *Connection) markJoined(tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.joined[tableID] = struct{}{}
}

func (c *Connection) isJoined(tableID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.joined[tableID]
	return ok
}

func (c *Connection) markLeft(tableID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.joined, tableID)
}

func (c *Connection) joinedTables() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.joined))
	for id := range c.joined {
		out = append(out, id)
	}
	return out
}

// trySend queues a pre-marshalled frame without blocking. A client that can't
// keep up gets disconnected rather than stalling the table.
func (c *Connection) trySend(data []byte) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("send on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- data:
	case <-c.ctx.Done():
	default:
		c.logger.Warn("send buffer full, closing connection", "player", c.PlayerID())
		_ = c.Close()
	}
}

func (c *Connection) sendMessage(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("marshal failed", "type", msg.Type, "error", err)
		return
	}
	c.trySend(data)
}

func (c *Connection) sendError(code, message string) {
	c.sendMessage(ServerMessage{Type: MessageTypeError, Code: code, Message: message})
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() {
		c.srv.dropConnection(c)
		_ = c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg ClientMessage
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Error("write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one inbound frame
func (c *Connection) handleMessage(msg *ClientMessage) {
	c.logger.Debug("received message", "type", msg.Type, "player", c.PlayerID())

	switch msg.Type {
	case MessageTypeAuth:
		c.handleAuth(msg)
	case MessageTypeListTables:
		c.handleListTables()
	default:
		c.handleAction(msg)
	}
}

func (c *Connection) handleAuth(msg *ClientMessage) {
	if msg.PlayerID == "" {
		c.sendError("invalid_auth", "player id required")
		return
	}

	c.setPlayerID(msg.PlayerID)
	c.logger.Info("authenticated", "player", msg.PlayerID)
	c.sendMessage(ServerMessage{Type: MessageTypeAuthOK, PlayerID: msg.PlayerID})
}

func (c *Connection) handleListTables() {
	c.sendMessage(ServerMessage{Type: MessageTypeTableList, Tables: c.srv.registry.List()})
}

func (c *Connection) handleAction(msg *ClientMessage) {
	action, ok := actionTypes[msg.Type]
	if !ok {
		c.sendError("unknown_message_type", "unknown message type: "+msg.Type)
		return
	}

	playerID := c.PlayerID()
	if playerID == "" {
		c.sendError("not_authenticated", "must authenticate first")
		return
	}
	if msg.TableID == "" {
		c.sendError("invalid_message", "table id required")
		return
	}

	if err := c.srv.performAction(c, action, msg); err != nil {
		c.sendError("action_failed", err.Error())
	}
}
