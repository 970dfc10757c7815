package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"batepapo/internal/chat"
	"batepapo/internal/config"
)

// IdentityHeader carries the caller's participant name.
const IdentityHeader = "User"

// maxBodyBytes はリクエストボディの上限 (1MB)
const maxBodyBytes = 1 << 20

// Handler holds application dependencies
type Handler struct {
	Registry *chat.Registry
	Messages *chat.MessageLog
	Hub      *Hub
	Config   config.Config
}

// New creates a new Handler with the given dependencies
func New(registry *chat.Registry, messages *chat.MessageLog, hub *Hub, cfg config.Config) *Handler {
	return &Handler{
		Registry: registry,
		Messages: messages,
		Hub:      hub,
		Config:   cfg,
	}
}

// SetupRouter configures and returns the HTTP router
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	// REST API
	r.HandleFunc("/participants", h.ListParticipants).Methods("GET")
	r.HandleFunc("/participants", h.RegisterParticipant).Methods("POST")
	r.HandleFunc("/messages", h.GetMessages).Methods("GET")
	r.HandleFunc("/messages", h.CreateMessage).Methods("POST")
	r.HandleFunc("/messages/{id}", h.DeleteMessage).Methods("DELETE")
	r.HandleFunc("/status", h.Heartbeat).Methods("POST")

	// WebSocket
	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}
