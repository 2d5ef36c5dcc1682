// Package feed streams the observed pointer to websocket subscribers
package feed

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/lixenwraith/trailfx/parameter"
	"github.com/lixenwraith/trailfx/status"
)

const writeWait = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Message is one observed-pointer publish
type Message struct {
	Type      string  `json:"type"`
	View      string  `json:"view"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	T         int64   `json:"t"`
	Particles int     `json:"particles"`
}

// PointerMessage builds a pointer message stamped in unix milliseconds
func PointerMessage(view string, x, y float64, at time.Time, particles int) Message {
	return Message{Type: "pointer", View: view, X: x, Y: y, T: at.UnixMilli(), Particles: particles}
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans messages out to connected clients
// Publish never blocks: a client whose buffer is full is dropped
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	log     *zap.Logger

	statClients *atomic.Int64
	statDropped *atomic.Int64
}

// NewHub creates an empty hub; reg may be nil
func NewHub(log *zap.Logger, reg *status.Registry) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		clients:     make(map[*client]struct{}),
		log:         log.Named("feed"),
		statClients: reg.Int(status.MetricFeedClients),
		statDropped: reg.Int(status.MetricFeedDropped),
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.statClients.Store(int64(len(h.clients)))
	return true
}

// removeLocked closes the send channel exactly once, guarded by map membership
func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.statClients.Store(int64(len(h.clients)))
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
}

// Publish encodes msg once and queues it for every client
func (h *Hub) Publish(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Warn("encode failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.removeLocked(c)
			h.statDropped.Add(1)
			h.log.Debug("slow client dropped")
		}
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// ServeHTTP upgrades the request and streams messages until either side closes
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", zap.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, parameter.FeedChannelSize)}
	if !h.add(c) {
		conn.Close()
		return
	}
	h.log.Debug("client connected", zap.String("remote", r.RemoteAddr))

	go h.writeLoop(c)

	// Inbound frames are ignored; reading surfaces the peer's close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(c)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.remove(c)
			// Drain until remove closes the channel
			for range c.send {
			}
			return
		}
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
