package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/botlab-edu/botlab/pkg/domain"
)

// Frame is one streamed notification to a renderer client.
type Frame struct {
	Type    string `json:"type"` // "pose", "path", "run_state" or "command"
	Payload any    `json:"payload"`
}

// Hub fans run notifications out to connected websocket renderers.
//
// Broadcast never blocks the executing goroutine: each client has a buffered
// queue and a slow client that falls behind is disconnected, since a renderer
// that cannot keep up has no use for stale frames anyway.
type Hub struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn  *websocket.Conn
	send  chan Frame
	close sync.Once
}

const clientQueueSize = 256

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Renderers are same-host tools; the API carries no credentials.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// serveWS upgrades the connection and streams frames until the client leaves.
func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan Frame, clientQueueSize)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("renderer connected", "remote", conn.RemoteAddr())

	go h.writeLoop(c)
	h.readLoop(c)
}

// readLoop drains the connection so close frames are processed; renderers
// send nothing meaningful upstream.
func (h *Hub) readLoop(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer h.drop(c)
	for frame := range c.send {
		if err := c.conn.WriteJSON(frame); err != nil {
			return
		}
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, present := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if present {
		h.logger.Debug("renderer disconnected", "remote", c.conn.RemoteAddr())
	}
	c.close.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// broadcast queues a frame for every client, dropping clients whose queue is
// full.
func (h *Hub) broadcast(frame Frame) {
	h.mu.Lock()
	var stale []*client
	for c := range h.clients {
		select {
		case c.send <- frame:
		default:
			stale = append(stale, c)
		}
	}
	h.mu.Unlock()

	for _, c := range stale {
		h.logger.Warn("dropping slow renderer", "remote", c.conn.RemoteAddr())
		h.drop(c)
	}
}

// Hooks returns domain hooks that stream every notification to connected
// renderers. Merge them into the controller's hooks when wiring the server.
func (h *Hub) Hooks() domain.Hooks {
	return domain.Hooks{
		OnPoseChanged: func(_ context.Context, p domain.Pose) {
			h.broadcast(Frame{Type: "pose", Payload: p})
		},
		OnPathChanged: func(_ context.Context, p domain.Path) {
			h.broadcast(Frame{Type: "path", Payload: p})
		},
		OnRunStateChanged: func(_ context.Context, s domain.RunStatus) {
			h.broadcast(Frame{Type: "run_state", Payload: s})
		},
		OnCommandApplied: func(_ context.Context, ev *domain.CommandEvent) {
			h.broadcast(Frame{Type: "command", Payload: ev})
		},
	}
}
