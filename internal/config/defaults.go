package config

import (
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/llm"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/a2a"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/mcp"
	"github.com/Mr-XX23/quiz-agentic/internal/tool"
)

// DefaultConfig returns a fully-populated configuration with both
// protocols enabled on their standard ports.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:           "quiz-agent",
			DefaultSession: "default",
		},
		LLM: llm.DefaultConfig(),
		Search: SearchConfig{
			Enabled:    true,
			Endpoint:   tool.DefaultSearchEndpoint,
			MaxResults: 5,
			Timeout:    30 * time.Second,
		},
		Extract: ExtractConfig{
			Enabled:          true,
			MaxContentLength: 10000,
			Timeout:          30 * time.Second,
		},
		A2A:     a2a.DefaultConfig(),
		MCP:     mcp.DefaultConfig(),
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
}
