package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port             string
	Env              string
	WriteTimeoutSecs int
	RateLimitPerMin  int

	// LLM backend
	LLMBackend    string
	LLMModel      string
	OllamaURL     string
	OpenAIBaseURL string
	OpenAIAPIKey  string
	GeminiAPIKey  string

	// Redis (optional, shared rate limiting)
	RedisURL string

	// Tutor persona
	TutorName    string
	TutorAnimal  string
	TutorSubject string

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("PORT", "8080"),
		Env:              getEnvOrDefault("ENV", "development"),
		WriteTimeoutSecs: getEnvAsIntOrDefault("HTTP_WRITE_TIMEOUT_SECONDS", 180),
		RateLimitPerMin:  getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 30),
		LLMBackend:       getEnvOrDefault("LLM_BACKEND", "ollama"),
		LLMModel:         getEnvOrDefault("LLM_MODEL", ""),
		OllamaURL:        getEnvOrDefault("OLLAMA_URL", "http://localhost:11434"),
		OpenAIBaseURL:    getEnvOrDefault("OPENAI_BASE_URL", "http://localhost:11434/v1"),
		OpenAIAPIKey:     getEnvOrDefault("OPENAI_API_KEY", ""),
		GeminiAPIKey:     getEnvOrDefault("GEMINI_API_KEY", ""),
		RedisURL:         getEnvOrDefault("REDIS_URL", ""),
		TutorName:        getEnvOrDefault("TUTOR_NAME", "Aren"),
		TutorAnimal:      getEnvOrDefault("TUTOR_ANIMAL", "capybara"),
		TutorSubject:     getEnvOrDefault("TUTOR_SUBJECT", "mathematics"),
		FrontendURL:      getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

// Validate checks that the selected backend has what it needs to start.
func (c *Config) Validate() error {
	switch c.LLMBackend {
	case "ollama":
		if c.OllamaURL == "" {
			return fmt.Errorf("OLLAMA_URL is required for the ollama backend")
		}
	case "openai":
		if c.OpenAIBaseURL == "" {
			return fmt.Errorf("OPENAI_BASE_URL is required for the openai backend")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini backend")
		}
	default:
		return fmt.Errorf("unknown LLM_BACKEND: %q", c.LLMBackend)
	}
	if c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMin)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
