// Package stream broadcasts per-tick population counters to websocket
// clients.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/san-kum/predprey/internal/ecosys"
)

const (
	writeWait = 2 * time.Second
	// sendQueue is how many messages a client may fall behind before it is
	// disconnected.
	sendQueue = 64
)

// Message types.
const (
	TypeSample = "sample"
	TypeStatus = "status"
)

type Message struct {
	Type      string `json:"type"`
	Step      int    `json:"step"`
	Predators int    `json:"predators"`
	Prey      int    `json:"prey"`
	Outcome   string `json:"outcome,omitempty"`
}

// client is one websocket connection. Only its writer goroutine writes to
// conn; the hub hands it messages through send.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans samples out to every connected client. It implements the
// experiment observer, so it is driven from the simulation goroutine while
// clients connect from HTTP goroutines. Broadcasting never waits on a
// client: a client whose queue is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte

	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP upgrades the request and keeps the client registered until it
// disconnects. A new client first receives the latest message, if any.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendQueue)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("client connected", "remote", r.RemoteAddr, "clients", n)

	go h.writeLoop(c)

	// clients only listen; reading detects the close
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.remove(c)
	n = len(h.clients)
	h.mu.Unlock()
	h.logger.Info("client disconnected", "remote", r.RemoteAddr, "clients", n)
}

// writeLoop drains c.send until the hub closes it, then says goodbye and
// closes the connection.
func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("dropping client", "remote", c.conn.RemoteAddr(), "err", err)
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()
			return
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "simulation closed")
	c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
}

// OnTick broadcasts one sample.
func (h *Hub) OnTick(s ecosys.Sample) {
	h.Broadcast(Message{Type: TypeSample, Step: s.Step, Predators: s.Predators, Prey: s.Prey})
}

// Finish broadcasts the final status of a run.
func (h *Hub) Finish(st ecosys.Status) {
	h.Broadcast(Message{
		Type:      TypeStatus,
		Step:      st.Step,
		Predators: st.Predators,
		Prey:      st.Prey,
		Outcome:   st.Outcome.String(),
	})
}

func (h *Hub) Broadcast(m Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Error("marshal message", "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("client too slow, disconnecting", "queued", len(c.send))
			h.remove(c)
		}
	}
}

// Latest returns the last broadcast message, or nil.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

// remove must be called with h.mu held. Closing send stops the client's
// writer, which closes the connection.
func (h *Hub) remove(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
