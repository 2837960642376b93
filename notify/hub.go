package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ErrUnknownConnection is returned when sending to a connection the hub does not hold
var ErrUnknownConnection = errors.New("unknown connection")

// Hub tracks local websocket connections by ID
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*hubConn
}

type hubConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*hubConn)}
}

// Register adds a connection under id, replacing any previous one
func (h *Hub) Register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[id] = &hubConn{conn: conn}
}

// Unregister forgets a connection without closing it
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

// Len is the number of registered connections
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Send writes body as a single text frame. Writes to one connection are serialized.
func (h *Hub) Send(ctx context.Context, destination string, body []byte) error {
	h.mu.RLock()
	c, ok := h.conns[destination]
	h.mu.RUnlock()
	if !ok {
		return ErrUnknownConnection
	}

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, body)
}
