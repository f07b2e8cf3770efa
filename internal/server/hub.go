// internal/server/hub.go
package server

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// upgrader promotes HTTP requests on /ws to websocket connections. Origin
// checking is skipped; this server only ever binds for local authoring.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// reloadHub tracks connected browsers and pushes reload notifications to
// them after successful rebuilds.
type reloadHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

func newReloadHub() *reloadHub {
	return &reloadHub{clients: make(map[*websocket.Conn]bool)}
}

// broadcast sends a text message to every connected client, dropping clients
// whose connection has gone away.
func (h *reloadHub) broadcast(message string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(message)); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// handleWS upgrades the request and parks until the browser disconnects.
// Clients never send meaningful messages; the read loop only detects close.
func (h *reloadHub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		if h.clients[conn] {
			delete(h.clients, conn)
			conn.Close()
		}
		h.mu.Unlock()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
