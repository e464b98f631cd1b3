// Package llm provides the text generation collaborator used by the quiz
// workflow. Providers are backed by langchaingo clients behind a small
// Generator interface so tests can substitute a scripted implementation.
package llm

import (
	"context"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Generator produces free-form text for a prompt.
type Generator interface {
	// Generate sends the prompt and returns the model's text response.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name identifies the backing provider.
	Name() string
}

// Config holds provider settings for a generator.
type Config struct {
	Provider    string        `json:"provider" mapstructure:"provider"`
	APIKey      string        `json:"-" mapstructure:"api_key"`
	Model       string        `json:"model" mapstructure:"model"`
	Temperature float64       `json:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `json:"timeout" mapstructure:"timeout"`
	BaseURL     string        `json:"base_url,omitempty" mapstructure:"base_url"`
}

// DefaultConfig returns the provider defaults.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

// New constructs a generator for the configured provider.
func New(cfg Config) (Generator, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAI(cfg)
	default:
		return nil, types.NewError(types.CONFIG_VALIDATION_FAILED,
			"unsupported llm provider: "+cfg.Provider)
	}
}
