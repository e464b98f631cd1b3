package agent

import (
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/a2a"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/mcp"
)

// Status is a point-in-time snapshot of the agent's runtime surface.
type Status struct {
	Running        bool           `json:"running"`
	AgentName      string         `json:"agent_name"`
	DefaultSession string         `json:"default_session"`
	Sessions       []string       `json:"sessions"`
	Tools          []string       `json:"tools_available"`
	A2A            a2a.ServerInfo `json:"a2a"`
	MCP            mcp.ServerInfo `json:"mcp"`
}

// Status reports the agent's current state for CLI and protocol output.
func (a *Agent) Status() Status {
	return Status{
		Running:        a.running.Load(),
		AgentName:      a.cfg.Agent.Name,
		DefaultSession: a.cfg.Agent.DefaultSession,
		Sessions:       a.store.Sessions(),
		Tools:          a.tools.Names(),
		A2A:            a.peers.Info(),
		MCP:            a.rpc.Info(),
	}
}
