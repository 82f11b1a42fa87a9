package services

import (
	"context"
	"strings"

	"aren-backend/internal/models"
)

const pingPrompt = "Reply with the single word: ready"

// TutorService composes the tutor prompt for a request and relays the
// student's message with it.
type TutorService struct {
	composer *PromptComposer
	relay    *ChatRelay
}

func NewTutorService(composer *PromptComposer, relay *ChatRelay) *TutorService {
	return &TutorService{composer: composer, relay: relay}
}

// Prompt renders the system prompt for req without calling the backend.
func (s *TutorService) Prompt(req models.AskRequest) (string, error) {
	return s.composer.Render(req.Profile())
}

// Ask renders the prompt and returns the backend's reply to req.UserInput.
func (s *TutorService) Ask(ctx context.Context, req models.AskRequest) (string, error) {
	if strings.TrimSpace(req.UserInput) == "" {
		return "", &ValidationError{Fields: map[string]string{"userInput": "is required"}}
	}

	prompt, err := s.composer.Render(req.Profile())
	if err != nil {
		return "", err
	}
	return s.relay.Send(ctx, req.UserInput, prompt)
}

// Ping runs a minimal round trip to check the backend is reachable.
func (s *TutorService) Ping(ctx context.Context) (string, error) {
	reply, err := s.relay.Send(ctx, pingPrompt, "You are a connectivity check. Answer briefly.")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (s *TutorService) Backend() string { return s.relay.Backend() }

func (s *TutorService) Model() string { return s.relay.Model() }
