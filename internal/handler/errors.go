package handler

import (
	"errors"
	"log"
	"net/http"

	"batepapo/internal/chat"
)

// writeChatError maps a chat error onto the HTTP response. route prefixes
// the log line, e.g. "[POST /messages]".
func writeChatError(w http.ResponseWriter, route string, err error) {
	var verr *chat.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Printf("%s ❌ Validation failed: %v", route, verr.Fields)
		writeJSON(w, http.StatusUnprocessableEntity, verr.Fields)
	case errors.Is(err, chat.ErrNameTaken):
		log.Printf("%s ❌ Conflict: %v", route, err)
		writeError(w, http.StatusConflict, "Name already in use")
	case errors.Is(err, chat.ErrUnknownSender):
		log.Printf("%s ❌ Unknown sender", route)
		writeJSON(w, http.StatusUnprocessableEntity, []string{"from is not a registered participant"})
	case errors.Is(err, chat.ErrMissingIdentity):
		log.Printf("%s ❌ Missing %s header", route, IdentityHeader)
		writeError(w, http.StatusUnprocessableEntity, IdentityHeader+" header is required")
	case errors.Is(err, chat.ErrNotFound):
		log.Printf("%s ❌ Not Found", route)
		writeError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, chat.ErrForbidden):
		log.Printf("%s ❌ Forbidden: %v", route, err)
		writeError(w, http.StatusUnauthorized, "Only the sender may delete this message")
	default:
		log.Printf("%s ❌ Database error: %v", route, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
