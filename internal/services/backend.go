package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"aren-backend/internal/models"
)

const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Default model identifiers, used when no model is configured.
var defaultModels = map[string]string{
	BackendOllama: "deepseek-r1:latest",
	BackendOpenAI: "deepseek-r1:latest",
	BackendGemini: "gemini-2.0-flash",
}

type BackendOptions struct {
	Kind          string
	Model         string
	OllamaURL     string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	GeminiAPIKey  string
}

// NewChatBackend builds the configured backend wrapped with request logging.
// Backends holding network clients also implement io.Closer.
func NewChatBackend(ctx context.Context, opts BackendOptions) (ChatBackend, error) {
	model := opts.Model
	if model == "" {
		model = defaultModels[opts.Kind]
	}

	var base ChatBackend
	var err error

	switch opts.Kind {
	case BackendOllama:
		base, err = NewOllamaBackend(opts.OllamaURL, model)
	case BackendOpenAI:
		base = NewOpenAIBackend(opts.OpenAIBaseURL, opts.OpenAIAPIKey, model)
	case BackendGemini:
		base, err = NewGeminiBackend(ctx, opts.GeminiAPIKey, model)
	default:
		return nil, fmt.Errorf("unknown LLM backend: %q", opts.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s backend: %w", opts.Kind, err)
	}

	return &loggingBackend{inner: base}, nil
}

// loggingBackend records latency and outcome of every backend call.
type loggingBackend struct {
	inner ChatBackend
}

func (l *loggingBackend) Name() string { return l.inner.Name() }

func (l *loggingBackend) Model() string { return l.inner.Model() }

func (l *loggingBackend) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	start := time.Now()
	reply, err := l.inner.Chat(ctx, messages)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		log.Printf("LLM %s/%s failed after %dms: %v", l.inner.Name(), l.inner.Model(), latency, err)
		return reply, err
	}
	log.Printf("LLM %s/%s replied in %dms (%d chars)", l.inner.Name(), l.inner.Model(), latency, len(reply))
	return reply, nil
}

func (l *loggingBackend) Close() error {
	if c, ok := l.inner.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
