package services

import (
	"context"
	"strings"
	"time"

	"denizsel-backend/internal/models"
)

type ChatService struct {
	completer   Completer
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

func NewChatService(completer Completer, maxTokens int, temperature float32, timeout time.Duration) *ChatService {
	return &ChatService{
		completer:   completer,
		maxTokens:   maxTokens,
		temperature: temperature,
		timeout:     timeout,
	}
}

// Reply sends the conversation to the completion provider behind the
// language's system prompt and returns the generated answer.
func (s *ChatService) Reply(ctx context.Context, messages []models.ChatMessage, lang models.Language) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	reply, err := s.completer.Complete(ctx, CompletionRequest{
		System:      SystemPrompt(lang),
		Messages:    normalizeRoles(messages),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", &UpstreamError{
			Service: "completion provider",
			Message: TextFor(lang).ChatUnavailable,
			Err:     err,
		}
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return TextFor(lang).ChatFallback, nil
	}
	return reply, nil
}

// normalizeRoles keeps assistant turns and treats every other role as the
// user, so a client cannot smuggle in its own system directive.
func normalizeRoles(messages []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(messages))
	for i, m := range messages {
		role := models.RoleUser
		if m.Role == models.RoleAssistant {
			role = models.RoleAssistant
		}
		out[i] = models.ChatMessage{Role: role, Content: m.Content}
	}
	return out
}
