// internal/display/hub.go
package display

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tamzrod/ppg-monitor/internal/session"
)

const writeWait = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans cycle results out to every connected websocket client.
// A client that cannot keep up within writeWait is dropped.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool

	// gorilla allows one concurrent writer per connection
	wmu sync.Mutex
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

func (h *Hub) add(c *websocket.Conn) {
	h.mu.Lock()
	h.conns[c] = true
	h.mu.Unlock()
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

func (h *Hub) snapshot() []*websocket.Conn {
	h.mu.Lock()
	clients := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		clients = append(clients, c)
	}
	h.mu.Unlock()
	return clients
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// BroadcastText sends one text frame to every client.
func (h *Hub) BroadcastText(b []byte) {
	h.wmu.Lock()
	defer h.wmu.Unlock()

	for _, c := range h.snapshot() {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			_ = c.Close()
			h.remove(c)
		}
	}
}

// BroadcastCycle sends one cycle as JSON.
func (h *Hub) BroadcastCycle(c session.Cycle) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	h.BroadcastText(b)
	return nil
}

// ServeHTTP upgrades to websocket and holds the client until it disconnects.
// Inbound frames are read and discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.add(conn)
	defer func() {
		h.remove(conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// NewServer mounts the hub on /ws.
func NewServer(addr string, h *Hub) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	return &http.Server{Addr: addr, Handler: mux}
}
