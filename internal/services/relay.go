package services

import (
	"context"
	"errors"
	"strings"

	"aren-backend/internal/models"
)

// ErrEmptyReply is wrapped in a RelayError when the backend answers without content.
var ErrEmptyReply = errors.New("backend returned no reply content")

// ChatBackend is a chat-completion service that answers an ordered exchange
// of role-tagged messages with a single reply.
type ChatBackend interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
	Name() string
	Model() string
}

// ChatRelay sends one user turn plus its system prompt to a backend.
type ChatRelay struct {
	backend ChatBackend
}

func NewChatRelay(backend ChatBackend) *ChatRelay {
	return &ChatRelay{backend: backend}
}

// Send performs a single round trip. Every failure, including an empty
// reply, comes back as *RelayError. The reply text is returned unmodified.
func (r *ChatRelay) Send(ctx context.Context, userMessage, systemPrompt string) (string, error) {
	messages := []models.ChatMessage{
		{Role: models.RoleSystem, Content: systemPrompt},
		{Role: models.RoleUser, Content: userMessage},
	}

	reply, err := r.backend.Chat(ctx, messages)
	if err != nil {
		return "", r.relayError(err)
	}
	if strings.TrimSpace(reply) == "" {
		return "", r.relayError(ErrEmptyReply)
	}
	return reply, nil
}

func (r *ChatRelay) Backend() string { return r.backend.Name() }

func (r *ChatRelay) Model() string { return r.backend.Model() }

func (r *ChatRelay) relayError(err error) error {
	return &RelayError{Backend: r.backend.Name(), Model: r.backend.Model(), Err: err}
}
