// Package websocket pushes build events to preview pages.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/conneroisu/reelsmith/internal/errors"
	"github.com/conneroisu/reelsmith/internal/logging"
	"github.com/coder/websocket"
)

const (
	sendBuffer   = 16
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
)

// Hub owns the set of connected clients. A single goroutine registers,
// unregisters and broadcasts, so the client map is only written there.
//
// Invariants:
//   - a client's send channel is closed exactly once, by the hub goroutine
//   - after Shutdown no client is registered and Broadcast fails
type Hub struct {
	clients      map[*Client]struct{}
	clientsMutex sync.RWMutex

	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	origins OriginValidator
	logger  logging.Logger

	ctx          context.Context
	cancel       context.CancelFunc
	done         chan struct{}
	shutdownOnce sync.Once
	closed       atomic.Bool
}

// NewHub starts a hub. A nil validator allows loopback origins only.
func NewHub(origins OriginValidator, logger logging.Logger) *Hub {
	if origins == nil {
		origins = LocalOrigins{}
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client, 8),
		unregister: make(chan *Client, 8),
		origins:    origins,
		logger:     logger.WithComponent("websocket"),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
	go h.run()

	return h
}

// HandleWebSocket upgrades the request and streams broadcasts to the
// client until either side closes.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.closed.Load() {
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	if origin := r.Header.Get("Origin"); origin != "" && !h.origins.IsAllowedOrigin(origin) {
		h.logger.Warn(r.Context(), nil, "Rejected WebSocket origin", "origin", origin, "remote", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Origin was validated above.
		InsecureSkipVerify: true,
		CompressionMode:    websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn(r.Context(), err, "WebSocket upgrade failed", "remote", r.RemoteAddr)
		return
	}

	client := &Client{
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		remote:    r.RemoteAddr,
		connected: time.Now(),
	}

	select {
	case h.register <- client:
	case <-h.ctx.Done():
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	h.serve(client)
}

// serve writes queued messages and pings until the connection or the hub
// closes. Incoming frames are discarded.
func (h *Hub) serve(c *Client) {
	ctx := c.conn.CloseRead(h.ctx)
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
	}()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				h.logger.Debug(ctx, "WebSocket write failed", "remote", c.remote, "error", err.Error())
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

func (h *Hub) run() {
	defer close(h.done)

	for {
		select {
		case c := <-h.register:
			h.clientsMutex.Lock()
			h.clients[c] = struct{}{}
			count := len(h.clients)
			h.clientsMutex.Unlock()
			h.logger.Debug(h.ctx, "WebSocket client connected", "remote", c.remote, "clients", count)

		case c := <-h.unregister:
			h.drop(c, websocket.StatusNormalClosure, "")

		case msg := <-h.broadcast:
			h.clientsMutex.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clients = append(clients, c)
			}
			h.clientsMutex.RUnlock()

			for _, c := range clients {
				select {
				case c.send <- msg:
				default:
					h.drop(c, websocket.StatusPolicyViolation, "client too slow")
				}
			}

		case <-h.ctx.Done():
			h.clientsMutex.RLock()
			clients := make([]*Client, 0, len(h.clients))
			for c := range h.clients {
				clients = append(clients, c)
			}
			h.clientsMutex.RUnlock()

			for _, c := range clients {
				h.drop(c, websocket.StatusGoingAway, "server shutting down")
			}
			return
		}
	}
}

// drop must only be called from the hub goroutine.
func (h *Hub) drop(c *Client, code websocket.StatusCode, reason string) {
	h.clientsMutex.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	count := len(h.clients)
	h.clientsMutex.Unlock()

	if !ok {
		return
	}
	close(c.send)
	_ = c.conn.Close(code, reason)
	h.logger.Debug(h.ctx, "WebSocket client disconnected", "remote", c.remote, "clients", count)
}

// Broadcast queues msg for every connected client. A zero Timestamp is set
// to now. Messages are dropped with a warning when the queue is full.
func (h *Hub) Broadcast(msg Message) error {
	if h.closed.Load() {
		return errors.NewInternalError(errors.ErrCodeInternalError, "websocket hub is shut down", nil)
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "encoding websocket message", err)
	}

	select {
	case h.broadcast <- data:
	case <-h.ctx.Done():
		return errors.NewInternalError(errors.ErrCodeInternalError, "websocket hub is shut down", nil)
	default:
		h.logger.Warn(h.ctx, nil, "Broadcast queue full, dropping message", "type", msg.Type)
	}
	return nil
}

// Origins returns the validator used for upgrade requests.
func (h *Hub) Origins() OriginValidator { return h.origins }

// ClientCount returns the number of registered clients.
func (h *Hub) ClientCount() int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()
	return len(h.clients)
}

// Shutdown closes every client and stops the hub. It waits for the hub
// goroutine or ctx, whichever comes first.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.shutdownOnce.Do(func() {
		h.closed.Store(true)
		h.cancel()
	})

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
