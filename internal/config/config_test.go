package config

import (
	"os"
	"testing"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.envValue != "" {
				os.Setenv(tc.key, tc.envValue)
				defer os.Unsetenv(tc.key)
			}

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"LLM_BACKEND", "LLM_MODEL", "OLLAMA_URL", "TUTOR_NAME", "RATE_LIMIT_PER_MINUTE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.LLMBackend != "ollama" {
		t.Errorf("Expected default backend 'ollama', got %q", cfg.LLMBackend)
	}
	if cfg.OllamaURL != "http://localhost:11434" {
		t.Errorf("Expected default Ollama URL, got %q", cfg.OllamaURL)
	}
	if cfg.TutorName != "Aren" {
		t.Errorf("Expected default tutor name 'Aren', got %q", cfg.TutorName)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Errorf("Expected default rate limit 30, got %d", cfg.RateLimitPerMin)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ollama ok", Config{LLMBackend: "ollama", OllamaURL: "http://localhost:11434", RateLimitPerMin: 10}, false},
		{"ollama without url", Config{LLMBackend: "ollama", RateLimitPerMin: 10}, true},
		{"openai ok", Config{LLMBackend: "openai", OpenAIBaseURL: "http://localhost:11434/v1", RateLimitPerMin: 10}, false},
		{"gemini without key", Config{LLMBackend: "gemini", RateLimitPerMin: 10}, true},
		{"gemini ok", Config{LLMBackend: "gemini", GeminiAPIKey: "key", RateLimitPerMin: 10}, false},
		{"unknown backend", Config{LLMBackend: "llamafile", RateLimitPerMin: 10}, true},
		{"zero rate limit", Config{LLMBackend: "ollama", OllamaURL: "http://x", RateLimitPerMin: 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
