package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"denizsel-backend/internal/models"
	"denizsel-backend/internal/services"
)

const errMessagesRequired = "Messages array is required"

type chatReplier interface {
	Reply(ctx context.Context, messages []models.ChatMessage, lang models.Language) (string, error)
}

type ChatHandler struct {
	chat chatReplier
}

func NewChatHandler(chat chatReplier) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(errMessagesRequired, r))
		return
	}

	messages, ok := parseMessages(req.Messages)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResp(errMessagesRequired, r))
		return
	}

	lang := models.ParseLanguage(req.Language)
	reply, err := h.chat.Reply(r.Context(), messages, lang)
	if err != nil {
		handleServiceError(w, r, err, services.TextFor(lang).ChatUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Message: reply})
}

// parseMessages accepts only a JSON array; absent, null and any other type
// are rejected.
func parseMessages(raw json.RawMessage) ([]models.ChatMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	messages := []models.ChatMessage{}
	if err := json.Unmarshal(trimmed, &messages); err != nil {
		return nil, false
	}
	return messages, true
}
