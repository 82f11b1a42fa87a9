package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"aren-backend/internal/models"
)

// GeminiBackend answers chats through Google Gemini.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a client for model. Extra options are appended after
// the API key, e.g. option.WithEndpoint for a proxy.
func NewGeminiBackend(ctx context.Context, apiKey, model string, opts ...option.ClientOption) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiBackend{client: client, model: model}, nil
}

func (b *GeminiBackend) Close() error {
	return b.client.Close()
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Model() string { return b.model }

// Chat maps system messages to the model's system instruction and sends the
// rest as the user turn. A fresh model value is built per call because
// GenerativeModel carries the system instruction.
func (b *GeminiBackend) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	model := b.client.GenerativeModel(b.model)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	var system []genai.Part
	var parts []genai.Part
	for _, m := range messages {
		if m.Role == models.RoleSystem {
			system = append(system, genai.Text(m.Content))
			continue
		}
		parts = append(parts, genai.Text(m.Content))
	}
	if len(system) > 0 {
		model.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
