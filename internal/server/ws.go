package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/averma/handwave/internal/gesture"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local connections only
	},
}

// EventsHandler broadcasts forwarded gesture events and engine mode
// changes to WebSocket clients. The engine publishes into it; clients
// only listen.
type EventsHandler struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{clients: make(map[*websocket.Conn]bool)}
}

// ServeHTTP upgrades the connection and holds it until the client
// disconnects.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

type eventMessage struct {
	Type      string  `json:"type"`
	Kind      string  `json:"kind,omitempty"`
	Delta     float64 `json:"delta,omitempty"`
	Mode      string  `json:"mode,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

// PublishEvent broadcasts one forwarded gesture event.
func (h *EventsHandler) PublishEvent(ev gesture.Event) {
	h.send(eventMessage{
		Type:      "gesture",
		Kind:      string(ev.Kind),
		Delta:     ev.Delta,
		Timestamp: ev.Time.UnixMilli(),
	})
}

// PublishMode broadcasts an engine mode change.
func (h *EventsHandler) PublishMode(mode gesture.Mode) {
	h.send(eventMessage{
		Type:      "mode",
		Mode:      mode.String(),
		Timestamp: time.Now().UnixMilli(),
	})
}

func (h *EventsHandler) send(msg eventMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.clients {
		conn.WriteMessage(websocket.TextMessage, payload)
	}
}

// ClientCount reports how many clients are connected.
func (h *EventsHandler) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
