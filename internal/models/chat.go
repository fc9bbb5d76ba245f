package models

import "encoding/json"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint. Messages is kept raw
// so a missing field, null and a non-array value can all be told apart from
// an empty conversation.
type ChatRequest struct {
	Messages json.RawMessage `json:"messages"`
	Language string          `json:"language,omitempty"`
}

// ChatResponse is the reply from the AI chat.
type ChatResponse struct {
	Message string `json:"message"`
}
