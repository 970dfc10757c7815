package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/samber/lo"

	"batepapo/internal/chat"
	"batepapo/internal/model"
)

// Hub fans room events out to connected WebSocket clients. It implements
// chat.Notifier.
type Hub struct {
	clients  map[*websocket.Conn]string
	clientMu sync.RWMutex
	events   chan model.Event
}

// NewHub creates a Hub whose queue holds up to buffer pending events.
func NewHub(buffer int) *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]string),
		events:  make(chan model.Event, buffer),
	}
}

// Publish queues event without blocking; it is dropped if the queue is full.
func (hub *Hub) Publish(event model.Event) {
	select {
	case hub.events <- event:
	default:
		log.Printf("[WebSocket] ⚠️  Event queue full, dropping %s", event.Type)
	}
}

// ClientCount returns the number of connected clients.
func (hub *Hub) ClientCount() int {
	hub.clientMu.RLock()
	defer hub.clientMu.RUnlock()
	return len(hub.clients)
}

// Run delivers queued events until ctx is cancelled, then closes every client.
func (hub *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			hub.clientMu.Lock()
			for client := range hub.clients {
				client.Close()
				delete(hub.clients, client)
			}
			hub.clientMu.Unlock()
			return
		case event := <-hub.events:
			hub.broadcast(event)
		}
	}
}

// broadcast skips clients the event's message is not visible to, deletions
// included.
func (hub *Hub) broadcast(event model.Event) {
	// clients マップをスナップショットしてからロックを外すことで、
	// range 中に delete して "concurrent map iteration and map write"
	// が発生するのを防ぐ
	hub.clientMu.RLock()
	snapshot := lo.Entries(hub.clients)
	hub.clientMu.RUnlock()

	for _, entry := range snapshot {
		if event.Message != nil && !event.Message.VisibleTo(entry.Value) {
			continue
		}
		if err := entry.Key.WriteJSON(event); err != nil {
			hub.remove(entry.Key)
		}
	}
}

func (hub *Hub) add(conn *websocket.Conn, viewer string) int {
	hub.clientMu.Lock()
	defer hub.clientMu.Unlock()
	hub.clients[conn] = viewer
	return len(hub.clients)
}

func (hub *Hub) remove(conn *websocket.Conn) int {
	conn.Close()
	hub.clientMu.Lock()
	defer hub.clientMu.Unlock()
	delete(hub.clients, conn)
	return len(hub.clients)
}

// createUpgrader creates a WebSocket upgrader with the given allowed origins
func createUpgrader(allowedOrigins []string) websocket.Upgrader {
	allowedMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedMap[origin] = true
	}

	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return allowedMap[origin]
		},
	}
}

// HandleWebSocket handles GET /ws?user=NAME
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := createUpgrader(h.Config.AllowedOrigins)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WebSocket] upgrade error: %v", err)
		return
	}

	viewer := strings.TrimSpace(r.URL.Query().Get("user"))
	total := h.Hub.add(conn, viewer)
	log.Printf("[WebSocket] New connection for %q. Total clients: %d", viewer, total)

	// クライアントからのメッセージを受信（キープアライブ用）
	for {
		var msg interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			remaining := h.Hub.remove(conn)
			log.Printf("[WebSocket] Client disconnected. Total clients: %d", remaining)
			return
		}
	}
}

var _ chat.Notifier = (*Hub)(nil)
