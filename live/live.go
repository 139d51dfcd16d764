package live

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

// Hub fans layout-change frames out to websocket subscribers, keyed by table
// id. State is instance-local; cross-instance delivery goes through the
// events worker, which calls Broadcast on every instance's own hub.
type Hub struct {
	mu          sync.Mutex
	subscribers map[string][]*websocket.Conn
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string][]*websocket.Conn)}
}

type frame struct {
	Type    string `json:"type"`
	TableID string `json:"table_id,omitempty"`
}

// HandleWS subscribes a client to one table's updates and blocks until the
// client disconnects.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	tableID := ps.ByName("id")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	h.subscribers[tableID] = append(h.subscribers[tableID], conn)
	h.mu.Unlock()

	for {
		// keeps the connection open until the client goes away
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	conns := h.subscribers[tableID]
	kept := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			kept = append(kept, c)
		}
	}
	h.subscribers[tableID] = kept
	h.mu.Unlock()

	conn.Close()
}

// BroadcastUpdate tells every subscriber of a table that its layout changed.
// Dead connections are dropped on write failure.
func (h *Hub) BroadcastUpdate(tableID string) {
	data, _ := json.Marshal(frame{Type: "update", TableID: tableID})

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.subscribers[tableID]
	kept := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err == nil {
			kept = append(kept, conn)
		} else {
			conn.Close()
		}
	}
	h.subscribers[tableID] = kept
}

// Stop closes every subscriber connection; called on server shutdown.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for key, conns := range h.subscribers {
		for _, conn := range conns {
			conn.Close()
		}
		delete(h.subscribers, key)
	}
}
