package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/medcare/clinic-management/internal/chat"
	"github.com/medcare/clinic-management/internal/clinic"
)

func listChatMessagesHandler(store *clinic.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.ChatHistory())
	}
}

// postChatMessageHandler stores the user message and schedules the scripted
// bot reply after the responder's typing delay. The reply lands regardless
// of whether the caller is still around, matching the original widget.
func postChatMessageHandler(store *clinic.Store, responder *chat.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PostChatMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if req.Content == "" {
			writeError(w, http.StatusBadRequest, "missing_required_fields", "content is required")
			return
		}
		if req.Sender == "" {
			req.Sender = "You"
		}

		stored := store.AddChatMessage(clinic.ChatMessage{
			Type:    clinic.MessageUser,
			Sender:  req.Sender,
			Content: req.Content,
		})

		reply := responder.Reply(req.Content)
		delay := responder.Delay()
		go func() {
			time.Sleep(delay)
			store.AddChatMessage(clinic.ChatMessage{
				Type:    clinic.MessageBot,
				Sender:  chat.BotName,
				Content: reply,
			})
		}()

		writeJSON(w, http.StatusCreated, stored)
	}
}
