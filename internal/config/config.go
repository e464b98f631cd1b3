// Package config defines the agent configuration, its YAML loader with
// ${VAR} environment interpolation, and struct-tag validation.
package config

import (
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/llm"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/a2a"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/mcp"
)

// Config is the complete agent configuration.
type Config struct {
	Agent   AgentConfig   `mapstructure:"agent" yaml:"agent"`
	LLM     llm.Config    `mapstructure:"llm" yaml:"llm"`
	Search  SearchConfig  `mapstructure:"search" yaml:"search"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	A2A     a2a.Config    `mapstructure:"a2a" yaml:"a2a"`
	MCP     mcp.Config    `mapstructure:"mcp" yaml:"mcp"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// AgentConfig names the agent and its default session.
type AgentConfig struct {
	Name           string `mapstructure:"name" yaml:"name" validate:"required"`
	DefaultSession string `mapstructure:"default_session" yaml:"default_session" validate:"required"`
}

// SearchConfig configures the web search collaborator.
type SearchConfig struct {
	Enabled    bool          `mapstructure:"enabled" yaml:"enabled"`
	Endpoint   string        `mapstructure:"endpoint" yaml:"endpoint"`
	APIKey     string        `mapstructure:"api_key" yaml:"api_key"`
	MaxResults int           `mapstructure:"max_results" yaml:"max_results" validate:"min=1,max=20"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ExtractConfig configures the content extraction collaborator.
type ExtractConfig struct {
	Enabled          bool          `mapstructure:"enabled" yaml:"enabled"`
	MaxContentLength int           `mapstructure:"max_content_length" yaml:"max_content_length" validate:"min=100"`
	Timeout          time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=json text"`
}
