package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// StudentProfile holds the fields that personalize the tutor prompt.
type StudentProfile struct {
	Name           string
	GradeLevel     string
	LearningStyle  string
	TopicsProgress map[string]int // topic -> mastery percentage (0-100)
	Language       string
	Role           string // teacher roles get the assistant prompt instead of the tutor one
	Subject        string
	CurrentTopics  string
}

// Score is a mastery percentage. JSON numbers with a zero fractional part
// (90.0) decode as well as plain integers.
type Score int

func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("score must be a number: %w", err)
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("score must be a whole number, got %v", f)
	}
	*s = Score(f)
	return nil
}

// AskRequest is the payload sent to the ask endpoint.
// encoding/json matches keys case-insensitively, so "userinput" is accepted too.
type AskRequest struct {
	UserInput      string           `json:"userInput"`
	LearningType   string           `json:"learningType"`
	Level          string           `json:"level"`
	Name           string           `json:"name"`
	TopicsProgress map[string]Score `json:"topics_progress,omitempty"`
	Language       string           `json:"language,omitempty"`
	Role           string           `json:"role,omitempty"`
	Subject        string           `json:"subject,omitempty"`
	CurrentTopics  string           `json:"currentTopics,omitempty"`
}

// Profile flattens the request into the profile the prompt is rendered from.
func (r AskRequest) Profile() StudentProfile {
	var progress map[string]int
	if len(r.TopicsProgress) > 0 {
		progress = make(map[string]int, len(r.TopicsProgress))
		for topic, score := range r.TopicsProgress {
			progress[topic] = int(score)
		}
	}
	return StudentProfile{
		Name:           r.Name,
		GradeLevel:     r.Level,
		LearningStyle:  r.LearningType,
		TopicsProgress: progress,
		Language:       r.Language,
		Role:           r.Role,
		Subject:        r.Subject,
		CurrentTopics:  r.CurrentTopics,
	}
}

// AskResponse is the tutor's reply.
type AskResponse struct {
	Response string `json:"response"`
}

// PromptResponse carries a rendered system prompt.
type PromptResponse struct {
	Prompt string `json:"prompt"`
}

type ConnectionStatus struct {
	Status             string `json:"status"`
	Message            string `json:"message"`
	TestPromptResponse string `json:"testPromptResponse,omitempty"`
}
