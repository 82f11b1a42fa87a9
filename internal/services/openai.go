package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"aren-backend/internal/models"
)

// OpenAIBackend talks to any OpenAI-compatible chat endpoint, including
// Ollama's /v1 API.
type OpenAIBackend struct {
	client *openai.Client
	model  string
}

func NewOpenAIBackend(baseURL, apiKey, model string) *OpenAIBackend {
	if apiKey == "" {
		// Ollama ignores the key but the client always sends one.
		apiKey = "ollama"
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

func (b *OpenAIBackend) Name() string { return "openai" }

func (b *OpenAIBackend) Model() string { return b.model }

func (b *OpenAIBackend) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    b.model,
		Messages: chatMessages,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI-compatible API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}
