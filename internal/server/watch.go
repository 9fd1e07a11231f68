package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// watchHub tracks websocket watchers per match and pushes the state version
// to them after each mutation. Watchers poll the state endpoints when a new
// version arrives.
type watchHub struct {
	mu      sync.Mutex
	clients map[string]map[*watchClient]struct{}
	logger  *zap.Logger
}

type watchClient struct {
	conn *websocket.Conn
	send chan []byte
}

func newWatchHub(logger *zap.Logger) *watchHub {
	return &watchHub{
		clients: make(map[string]map[*watchClient]struct{}),
		logger:  logger,
	}
}

func (h *watchHub) register(gameID string, c *watchClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[gameID]
	if !ok {
		set = make(map[*watchClient]struct{})
		h.clients[gameID] = set
	}
	set[c] = struct{}{}
}

func (h *watchHub) unregister(gameID string, c *watchClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[gameID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, gameID)
	}
}

// notify fans the new version out to every watcher of the match. Watchers
// that cannot keep up are dropped.
func (h *watchHub) notify(gameID, version string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[gameID] {
		select {
		case c.send <- []byte(version):
		default:
			delete(h.clients[gameID], c)
			close(c.send)
		}
	}
	if len(h.clients[gameID]) == 0 {
		delete(h.clients, gameID)
	}
}

// serve upgrades the request and streams version tokens until the client
// disconnects. The initial version is sent immediately so watchers can sync.
func (h *watchHub) serve(w http.ResponseWriter, r *http.Request, gameID, version string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &watchClient{conn: conn, send: make(chan []byte, 8)}
	h.register(gameID, c)
	c.send <- []byte(version)

	go c.writePump()
	go func() {
		c.readPump()
		h.unregister(gameID, c)
	}()
}

// readPump discards inbound frames. Its only job is to notice disconnects and
// answer pings.
func (c *watchClient) readPump() {
	defer c.conn.Close()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *watchClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
