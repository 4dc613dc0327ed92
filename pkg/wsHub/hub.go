package ws

import (
	"context"
	"errors"
	"sync"

	"github.com/Temutjin2k/ride-hail-insights/pkg/logger"
	wrap "github.com/Temutjin2k/ride-hail-insights/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-hail-insights/pkg/metrics"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps one live websocket per entity.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	service string
	l       logger.Logger
	mu      sync.Mutex
}

func NewConnHub(service string, l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		service: service,
		l:       l,
	}
}

// Add registers the connection. An existing connection with the same
// entity ID is closed and replaced.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.entityID]; ok {
		h.l.Warn(ctx,
			"replacing existing connection",
			"entity_ID", existing.entityID,
		)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx,
				"failed to close existing conn",
				"entity_ID", existing.entityID,
				"err", err.Error(),
			)
		}
	} else {
		metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Inc()
	}

	h.clients[newConn.entityID] = newConn
	return nil
}

// Delete closes and removes the connection. A stale conn that was already
// replaced is only closed.
func (h *ConnectionHub) Delete(c *Conn) error {
	if c == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	if err := c.Close(); err != nil {
		h.l.Debug(ctx, "failed to close conn", "entity_ID", c.entityID, "err", err.Error())
	}

	current, ok := h.clients[c.entityID]
	if !ok || current != c {
		return ErrConnIsNotFound
	}

	delete(h.clients, c.entityID)
	metrics.WebSocketConnectionsGauge.WithLabelValues(h.service).Dec()
	return nil
}

// SendTo returns ErrConnIsNotFound when the entity has no connection.
func (h *ConnectionHub) SendTo(id uuid.UUID, msg any) error {
	conn, err := h.GetConn(id)
	if err != nil {
		return err
	}
	return conn.Send(msg)
}

// Broadcast sends msg to every connection and returns how many received it.
func (h *ConnectionHub) Broadcast(msg any) int {
	ctx := wrap.WithAction(context.Background(), "ws_broadcast")

	sent := 0
	for id, conn := range h.Clients() {
		if err := conn.Send(msg); err != nil {
			h.l.Debug(ctx, "broadcast failed", "entity_ID", id, "err", err.Error())
			continue
		}
		sent++
	}
	return sent
}

// Close closes every websocket connection.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	for _, conn := range h.Clients() {
		_ = h.Delete(conn)
	}

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

// Clients returns a copy of the client map.
func (h *ConnectionHub) Clients() map[uuid.UUID]*Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	copyMap := make(map[uuid.UUID]*Conn, len(h.clients))
	for id, conn := range h.clients {
		copyMap[id] = conn
	}
	return copyMap
}

func (h *ConnectionHub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *ConnectionHub) GetConn(id uuid.UUID) (*Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[id]
	if !ok {
		return nil, ErrConnIsNotFound
	}
	return conn, nil
}
