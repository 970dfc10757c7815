package handler

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"batepapo/internal/model"
)

type messageRequest struct {
	To   string            `json:"to"`
	Text string            `json:"text"`
	Type model.MessageType `json:"type"`
}

// CreateMessage handles POST /messages
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	const route = "[POST /messages]"
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	// リクエストボディサイズを1MBに制限
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body messageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Printf("%s ❌ Bad Request: %v", route, err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.Messages.Append(r.Context(), model.Message{
		From: r.Header.Get(IdentityHeader),
		To:   body.To,
		Text: body.Text,
		Type: body.Type,
	})
	if err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Created message: ID=%s, From=%q, Type=%s", route, msg.ID, msg.From, msg.Type)
	writeText(w, http.StatusCreated, "Mensagem enviada com sucesso!")
}

// GetMessages handles GET /messages
// 閲覧者に見えるメッセージを古い順に返す。limit 指定時は末尾 limit 件のみ
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	const route = "[GET /messages]"
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	viewer := r.Header.Get(IdentityHeader)

	var limit *int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			log.Printf("%s ❌ Invalid limit: %q", route, raw)
			writeJSON(w, http.StatusUnprocessableEntity, []string{"limit must be an integer"})
			return
		}
		limit = &n
	}

	msgList, err := h.Messages.Query(r.Context(), viewer, limit)
	if err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Returned %d messages for %q", route, len(msgList), viewer)
	writeJSON(w, http.StatusOK, msgList)
}

// DeleteMessage handles DELETE /messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	route := fmt.Sprintf("[DELETE /messages/%s]", id)
	log.Printf("%s Request received from %s", route, r.RemoteAddr)

	if err := h.Messages.Delete(r.Context(), id, r.Header.Get(IdentityHeader)); err != nil {
		writeChatError(w, route, err)
		return
	}

	log.Printf("%s ✅ Deleted successfully", route)
	w.WriteHeader(http.StatusNoContent)
}
