package services

import (
	"context"

	"denizsel-backend/internal/models"
)

// CompletionRequest is a provider-agnostic chat completion call. Messages only
// ever carry the user and assistant roles; System is sent by each provider in
// its own system-instruction slot.
type CompletionRequest struct {
	System      string
	Messages    []models.ChatMessage
	MaxTokens   int
	Temperature float32
}

// Completer produces the next assistant message for a conversation. An empty
// string with a nil error means the provider answered without usable text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
