package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"

	"aren-backend/internal/models"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	path              string
	SystemInstruction *geminiContent  `json:"systemInstruction"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"topP"`
	} `json:"generationConfig"`
}

func newTestGeminiBackend(t *testing.T, reply string, requests *[]geminiRequest) *GeminiBackend {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := geminiRequest{path: r.URL.Path}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		*requests = append(*requests, req)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"role": "model", "parts": []map[string]any{{"text": reply}}}},
			},
		})
	}))
	t.Cleanup(server.Close)

	backend, err := NewGeminiBackend(context.Background(), "test-key", "gemini-2.0-flash", option.WithEndpoint(server.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestGeminiBackend_SystemInstructionAndModel(t *testing.T) {
	var requests []geminiRequest
	backend := newTestGeminiBackend(t, "Draw it, Ana.", &requests)

	reply, err := backend.Chat(context.Background(), []models.ChatMessage{
		{Role: models.RoleSystem, Content: "You are Aren"},
		{Role: models.RoleUser, Content: "What is 3+4?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Draw it, Ana." {
		t.Fatalf("unexpected reply %q", reply)
	}

	if len(requests) != 1 {
		t.Fatalf("expected one request, got %d", len(requests))
	}
	got := requests[0]
	if !strings.HasSuffix(got.path, "/models/gemini-2.0-flash:generateContent") {
		t.Errorf("expected configured model in path, got %q", got.path)
	}
	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != "You are Aren" {
		t.Errorf("expected system prompt as system instruction, got %+v", got.SystemInstruction)
	}
	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 1 || got.Contents[0].Parts[0].Text != "What is 3+4?" {
		t.Errorf("expected only the user message in contents, got %+v", got.Contents)
	}
	if got.GenerationConfig.Temperature < 0.69 || got.GenerationConfig.Temperature > 0.71 {
		t.Errorf("expected temperature 0.7, got %v", got.GenerationConfig.Temperature)
	}
}

func TestGeminiBackend_SystemInstructionIsPerCall(t *testing.T) {
	var requests []geminiRequest
	backend := newTestGeminiBackend(t, "ok", &requests)
	ctx := context.Background()

	backend.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: "You are Aren"},
		{Role: models.RoleUser, Content: "hi"},
	})
	backend.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleSystem, Content: "You are a connectivity check"},
		{Role: models.RoleUser, Content: "ping"},
	})
	backend.Chat(ctx, []models.ChatMessage{
		{Role: models.RoleUser, Content: "no system"},
	})

	if len(requests) != 3 {
		t.Fatalf("expected three requests, got %d", len(requests))
	}
	if got := requests[1].SystemInstruction; got == nil || got.Parts[0].Text != "You are a connectivity check" {
		t.Errorf("expected second call to carry its own system instruction, got %+v", got)
	}
	if got := requests[2].SystemInstruction; got != nil {
		t.Errorf("expected no system instruction to leak into a later call, got %+v", got)
	}
}
