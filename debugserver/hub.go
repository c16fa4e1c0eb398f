package debugserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Hub holds the latest snapshot and fans it out to websocket clients. The
// game loop calls Publish every tick; it never blocks.
type Hub struct {
	mu      sync.RWMutex
	latest  *Snapshot
	clients map[*websocket.Conn]struct{}

	limiter   *rate.Limiter
	broadcast chan []byte
}

// NewHub broadcasts at most hz snapshots per second. hz <= 0 disables the
// limit.
func NewHub(hz float64) *Hub {
	limit := rate.Inf
	if hz > 0 {
		limit = rate.Limit(hz)
	}
	return &Hub{
		clients:   make(map[*websocket.Conn]struct{}),
		limiter:   rate.NewLimiter(limit, 1),
		broadcast: make(chan []byte, 8),
	}
}

func (h *Hub) Publish(s *Snapshot) {
	if h == nil || s == nil {
		return
	}
	h.mu.Lock()
	h.latest = s
	n := len(h.clients)
	h.mu.Unlock()

	if n == 0 || !h.limiter.Allow() {
		return
	}
	msg, err := json.Marshal(s)
	if err != nil {
		log.Printf("debugserver: marshal snapshot: %v", err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
	}
}

func (h *Hub) Latest() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Run writes broadcasts to clients until ctx is done, then closes them.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		case msg := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("debugserver: upgrade: %v", err)
		return
	}
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()

	// Drain reads so close frames are handled; clients never send.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				h.mu.Lock()
				if _, ok := h.clients[conn]; ok {
					conn.Close()
					delete(h.clients, conn)
				}
				h.mu.Unlock()
				return
			}
		}
	}()
}
