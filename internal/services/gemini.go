package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"denizsel-backend/internal/models"
)

type GeminiCompleter struct {
	client *genai.Client
	model  string
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompleter{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiCompleter) Close() error {
	return g.client.Close()
}

// Complete replays all but the last message as chat history and sends the last
// one. A conversation that does not end with a user turn has nothing to
// answer and yields no text.
func (g *GeminiCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	history, prompt, ok := splitConversation(req.Messages)
	if !ok {
		return "", nil
	}

	// GenerativeModel returns a fresh value, so per-call settings are not shared
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	model.SetTemperature(req.Temperature)
	model.SetMaxOutputTokens(int32(req.MaxTokens))

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini chat error: %w", err)
	}

	return strings.TrimSpace(extractText(resp)), nil
}

// splitConversation turns every message but the last into chat history and
// returns the last one as the prompt. ok is false unless the last message is
// a user turn.
func splitConversation(messages []models.ChatMessage) (history []*genai.Content, prompt string, ok bool) {
	if len(messages) == 0 {
		return nil, "", false
	}

	last := messages[len(messages)-1]
	if geminiRole(last.Role) != "user" {
		return nil, "", false
	}

	for _, m := range messages[:len(messages)-1] {
		history = append(history, &genai.Content{
			Role:  geminiRole(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}
	return history, last.Content, true
}

func geminiRole(role string) string {
	if role == models.RoleAssistant {
		return "model"
	}
	return "user"
}

// extractText returns the text of the first candidate only.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}
