package handler

import (
	"encoding/json"
	"log"
	"net/http"
)

type registerRequest struct {
	Name string `json:"name"`
}

// RegisterParticipant handles POST /participants
func (h *Handler) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	const route = "[POST /participants]"
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body registerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("%s ❌ Bad Request: %v", route, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	p, err := h.Registry.Register(r.Context(), body.Name)
	if err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Registered participant %q", route, p.Name)
	writeText(w, http.StatusCreated, "Seu lindo nome foi registrado com sucesso!")
}

// ListParticipants handles GET /participants
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	const route = "[GET /participants]"
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	participants, err := h.Registry.List(r.Context())
	if err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Returned %d participants", route, len(participants))
	writeJSON(w, http.StatusOK, participants)
}

// Heartbeat handles POST /status
func (h *Handler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	const route = "[POST /status]"
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	name := r.Header.Get(IdentityHeader)
	if err := h.Registry.Heartbeat(r.Context(), name); err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Status updated for %q", route, name)
	writeText(w, http.StatusOK, "Status atualizado!")
}
