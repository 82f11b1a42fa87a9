package services

import (
	"context"
	"errors"
	"testing"

	"aren-backend/internal/models"
)

type fakeBackend struct {
	reply    string
	err      error
	messages []models.ChatMessage
	calls    int
}

func (f *fakeBackend) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	f.calls++
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Model() string { return "fake-model" }

func TestChatRelay_SendsSystemThenUser(t *testing.T) {
	backend := &fakeBackend{reply: "  Let's draw it first.\n"}
	relay := NewChatRelay(backend)

	reply, err := relay.Send(context.Background(), "What is 3+4?", "You are Aren")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "  Let's draw it first.\n" {
		t.Fatalf("expected reply returned unmodified, got %q", reply)
	}

	if len(backend.messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(backend.messages))
	}
	if backend.messages[0].Role != models.RoleSystem || backend.messages[0].Content != "You are Aren" {
		t.Fatalf("expected system prompt first, got %+v", backend.messages[0])
	}
	if backend.messages[1].Role != models.RoleUser || backend.messages[1].Content != "What is 3+4?" {
		t.Fatalf("expected user message second, got %+v", backend.messages[1])
	}
}

func TestChatRelay_BackendErrorBecomesRelayError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:11434: connection refused")
	relay := NewChatRelay(&fakeBackend{err: cause})

	_, err := relay.Send(context.Background(), "hi", "prompt")

	var relayErr *RelayError
	if !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %T: %v", err, err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected RelayError to wrap the backend error")
	}
	if relayErr.Backend != "fake" || relayErr.Model != "fake-model" {
		t.Fatalf("expected backend and model recorded, got %+v", relayErr)
	}
}

func TestChatRelay_EmptyReplyBecomesRelayError(t *testing.T) {
	for _, reply := range []string{"", "   \n"} {
		relay := NewChatRelay(&fakeBackend{reply: reply})

		_, err := relay.Send(context.Background(), "hi", "prompt")
		if !errors.Is(err, ErrEmptyReply) {
			t.Fatalf("expected ErrEmptyReply for %q, got %v", reply, err)
		}
		var relayErr *RelayError
		if !errors.As(err, &relayErr) {
			t.Fatalf("expected RelayError for %q, got %T", reply, err)
		}
	}
}
