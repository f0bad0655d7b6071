package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"prodtrack/internal/domain/event"
)

const writeWait = 5 * time.Second

// Hub keeps the open websocket connections of every signed-in user and pushes
// friend and head-to-head events to them.
type Hub struct {
	log      *zap.SugaredLogger
	upgrader websocket.Upgrader
	mu       sync.Mutex
	conns    map[string]map[*websocket.Conn]struct{}
}

// NewHub accepts cross-origin upgrades only when allowAnyOrigin is set.
// Otherwise the Origin header, when present, must match the request host.
func NewHub(log *zap.SugaredLogger, allowAnyOrigin bool) *Hub {
	h := &Hub{
		log:   log,
		conns: make(map[string]map[*websocket.Conn]struct{}),
	}
	if allowAnyOrigin {
		h.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return h
}

// Serve upgrades the request and blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, email string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws upgrade error: ", err)
		return
	}

	h.register(email, conn)
	defer h.unregister(email, conn)

	for {
		// inbound frames are ignored; reading keeps control frames flowing
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warnf("ws read error for %s: %v", email, err)
			}
			return
		}
	}
}

// Notify sends ev to every connection of email. No connection is a no-op.
func (h *Hub) Notify(email string, ev event.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns[email] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Errorf("ws write to %s failed: %v", email, err)
			conn.Close()
			delete(h.conns[email], conn)
		}
	}
	if len(h.conns[email]) == 0 {
		delete(h.conns, email)
	}
}

// Connected reports how many live connections email has.
func (h *Hub) Connected(email string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[email])
}

func (h *Hub) register(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[email] == nil {
		h.conns[email] = make(map[*websocket.Conn]struct{})
	}
	h.conns[email][conn] = struct{}{}
}

func (h *Hub) unregister(email string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.conns[email], conn)
	if len(h.conns[email]) == 0 {
		delete(h.conns, email)
	}
}
