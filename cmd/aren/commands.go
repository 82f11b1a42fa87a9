package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"aren-backend/internal/config"
	"aren-backend/internal/models"
	"aren-backend/internal/services"
)

var (
	studentName   string
	gradeLevel    string
	learningStyle string
	language      string
	role          string
	subject       string
	currentTopics string
	topics        map[string]int
)

var rootCmd = &cobra.Command{
	Use:   "aren",
	Short: "Aren tutor from the command line",
	Long: `Render the Aren tutor prompt or ask the tutor a question without the web API.

Backend settings come from the same environment variables (or .env) as the server.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system prompt for a student profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		prompt, err := newComposer(cfg).Render(profileRequest("").Profile())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), prompt)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask the tutor a question and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := context.Background()
		backend, err := services.NewChatBackend(ctx, services.BackendOptions{
			Kind:          cfg.LLMBackend,
			Model:         cfg.LLMModel,
			OllamaURL:     cfg.OllamaURL,
			OpenAIBaseURL: cfg.OpenAIBaseURL,
			OpenAIAPIKey:  cfg.OpenAIAPIKey,
			GeminiAPIKey:  cfg.GeminiAPIKey,
		})
		if err != nil {
			return err
		}
		if c, ok := backend.(io.Closer); ok {
			defer c.Close()
		}

		tutor := services.NewTutorService(newComposer(cfg), services.NewChatRelay(backend))
		reply, err := tutor.Ask(ctx, profileRequest(strings.Join(args, " ")))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{promptCmd, askCmd} {
		c.Flags().StringVar(&studentName, "name", "", "Student name (required)")
		c.Flags().StringVar(&gradeLevel, "level", "", "Grade level, e.g. 7th (required for students)")
		c.Flags().StringVar(&learningStyle, "style", "visual", "Learning style: visual, auditory, kinesthetic, reading/writing")
		c.Flags().StringVar(&language, "language", "", "Reply language (default English)")
		c.Flags().StringVar(&role, "role", "", "Caller role; teacher, professor, admin or docente get the assistant prompt")
		c.Flags().StringVar(&subject, "subject", "", "Class subject")
		c.Flags().StringVar(&currentTopics, "current-topics", "", "Topics the class is covering")
		c.Flags().StringToIntVar(&topics, "topic", nil, "Topic mastery as topic=score, repeatable")
		c.MarkFlagRequired("name")
	}
	rootCmd.AddCommand(promptCmd, askCmd)
}

func newComposer(cfg *config.Config) *services.PromptComposer {
	return services.NewPromptComposer(services.Persona{
		Name:    cfg.TutorName,
		Animal:  cfg.TutorAnimal,
		Subject: cfg.TutorSubject,
	})
}

func profileRequest(message string) models.AskRequest {
	var progress map[string]models.Score
	if len(topics) > 0 {
		progress = make(map[string]models.Score, len(topics))
		for topic, score := range topics {
			progress[topic] = models.Score(score)
		}
	}
	return models.AskRequest{
		UserInput:      message,
		LearningType:   learningStyle,
		Level:          gradeLevel,
		Name:           studentName,
		TopicsProgress: progress,
		Language:       language,
		Role:           role,
		Subject:        subject,
		CurrentTopics:  currentTopics,
	}
}
