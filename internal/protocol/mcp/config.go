package mcp

import (
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Config holds the tool protocol settings.
type Config struct {
	// ServerID identifies this server in initialize responses.
	ServerID string `json:"server_id" mapstructure:"server_id"`

	Host    string `json:"host" mapstructure:"host"`
	Port    int    `json:"port" mapstructure:"port"`
	Enabled bool   `json:"enabled" mapstructure:"enabled"`

	// Timeout bounds one method execution.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the tool protocol defaults.
func DefaultConfig() Config {
	return Config{
		ServerID: "quiz-mcp-" + types.ShortToken(),
		Host:     "localhost",
		Port:     8002,
		Enabled:  true,
		Timeout:  30 * time.Second,
	}
}
