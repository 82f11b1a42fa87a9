package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"aren-backend/internal/models"
)

func TestOllamaBackend_Chat(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/x-ndjson")
		json.NewEncoder(w).Encode(map[string]any{
			"model":      "deepseek-r1:latest",
			"created_at": "2026-02-16T10:00:00Z",
			"message":    map[string]any{"role": "assistant", "content": "Draw three circles first."},
			"done":       true,
		})
	}))
	defer server.Close()

	backend, err := NewOllamaBackend(server.URL, "deepseek-r1:latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reply, err := backend.Chat(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: "You are Aren"},
		{Role: models.RoleUser, Content: "What is 3+4?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Draw three circles first." {
		t.Fatalf("unexpected reply %q", reply)
	}
	if got.Model != "deepseek-r1:latest" {
		t.Fatalf("expected model deepseek-r1:latest, got %q", got.Model)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages sent: %+v", got.Messages)
	}
}

func TestOllamaBackend_ErrorThroughRelay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"model \"deepseek-r1:latest\" not found, try pulling it first"}` + "\n"))
	}))
	defer server.Close()

	backend, err := NewOllamaBackend(server.URL, "deepseek-r1:latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewChatRelay(backend).Send(context.Background(), "hi", "prompt")
	var relayErr *RelayError
	if !errors.As(err, &relayErr) {
		t.Fatalf("expected RelayError, got %T: %v", err, err)
	}
	if relayErr.Backend != "ollama" {
		t.Fatalf("expected ollama backend in error, got %q", relayErr.Backend)
	}
}
