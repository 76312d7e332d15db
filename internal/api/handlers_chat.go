package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/tripweaver/tripweaver/internal/api/respond"
	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/services"
)

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	svc *services.ChatService
}

func NewChatHandler(svc *services.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// HandleChat POST /api/itineraries/{itineraryId}/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["itineraryId"]

	var req struct {
		Message string              `json:"message"`
		Context model.ChatContext   `json:"context"`
		History []model.ChatMessage `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	reply, err := h.svc.HandleMessage(r.Context(), id, model.ChatMessage{Text: req.Message}, req.Context, req.History)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, reply)
}
