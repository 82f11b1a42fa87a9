package models

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage represents a single message in the exchange sent to a backend.
type ChatMessage struct {
	Role    string `json:"role"` // "system" or "user"
	Content string `json:"content"`
}
