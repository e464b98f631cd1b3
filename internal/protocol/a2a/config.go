package a2a

import (
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Config holds the peer protocol settings.
type Config struct {
	// AgentID identifies this agent to its peers.
	AgentID string `json:"agent_id" mapstructure:"agent_id"`

	Host    string `json:"host" mapstructure:"host"`
	Port    int    `json:"port" mapstructure:"port"`
	Enabled bool   `json:"enabled" mapstructure:"enabled"`

	// MaxMessageSize bounds the accepted request body in bytes.
	MaxMessageSize int64 `json:"max_message_size" mapstructure:"max_message_size"`

	// Timeout bounds one outbound send.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the peer protocol defaults. The agent id carries a
// random suffix so two default-configured agents on one network stay
// distinguishable.
func DefaultConfig() Config {
	return Config{
		AgentID:        "quiz-agent-" + types.ShortToken(),
		Host:           "localhost",
		Port:           8001,
		Enabled:        true,
		MaxMessageSize: 1 << 20,
		Timeout:        30 * time.Second,
	}
}
