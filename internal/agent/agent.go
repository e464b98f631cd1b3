// Package agent wires the quiz agent together: the workflow executor, the
// LLM generator, the web tools, the session store, and both protocol
// servers.
package agent

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/config"
	"github.com/Mr-XX23/quiz-agentic/internal/llm"
	"github.com/Mr-XX23/quiz-agentic/internal/observability"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/a2a"
	"github.com/Mr-XX23/quiz-agentic/internal/protocol/mcp"
	"github.com/Mr-XX23/quiz-agentic/internal/session"
	"github.com/Mr-XX23/quiz-agentic/internal/tool"
	"github.com/Mr-XX23/quiz-agentic/internal/types"
	"github.com/Mr-XX23/quiz-agentic/internal/workflow"
)

// Agent is the single-agent quiz orchestrator.
type Agent struct {
	cfg    *config.Config
	logger *observability.AgentLogger

	generator llm.Generator
	searcher  tool.Searcher
	extractor tool.Extractor
	tools     *tool.Registry

	store    *session.Store
	executor *workflow.Executor

	peers     *a2a.Protocol
	peerSrv   *a2a.Server
	rpc       *mcp.Protocol
	rpcSrv    *mcp.Server
	running   atomic.Bool
	startedAt time.Time
}

// Option overrides a collaborator, used by tests and embedders.
type Option func(*Agent)

// WithGenerator substitutes the LLM generator.
func WithGenerator(g llm.Generator) Option {
	return func(a *Agent) { a.generator = g }
}

// WithSearcher substitutes the web search collaborator.
func WithSearcher(s tool.Searcher) Option {
	return func(a *Agent) { a.searcher = s }
}

// WithExtractor substitutes the content extraction collaborator.
func WithExtractor(e tool.Extractor) Option {
	return func(a *Agent) { a.extractor = e }
}

// WithLogger substitutes the structured logger.
func WithLogger(l *observability.AgentLogger) Option {
	return func(a *Agent) { a.logger = l }
}

// New builds an agent from configuration. Collaborators not overridden by
// options are constructed from the config; a missing LLM API key fails
// here rather than on the first turn.
func New(cfg *config.Config, opts ...Option) (*Agent, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	a := &Agent{
		cfg:   cfg,
		store: session.NewStore(),
		tools: tool.NewRegistry(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		handler := observability.NewHandler(os.Stderr, cfg.Logging.Format, cfg.Logging.Level)
		a.logger = observability.NewAgentLogger(handler, cfg.Agent.Name)
	}

	if a.generator == nil {
		gen, err := llm.New(cfg.LLM)
		if err != nil {
			return nil, err
		}
		a.generator = gen
	}

	if a.searcher == nil && cfg.Search.Enabled {
		a.searcher = tool.NewWebSearch(cfg.Search.Endpoint, cfg.Search.APIKey, cfg.Search.Timeout)
	}
	if a.extractor == nil && cfg.Extract.Enabled {
		a.extractor = tool.NewContentExtractor(cfg.Extract.Timeout)
	}

	if err := a.registerTools(); err != nil {
		return nil, err
	}

	executor, err := workflow.NewExecutor(workflow.QuizGraph(), a.logger.Logger())
	if err != nil {
		return nil, err
	}
	a.executor = executor

	a.peers = a2a.NewProtocol(cfg.A2A, a.logger.Logger())
	a.registerPeerHandlers()

	a.rpc = mcp.NewProtocol(cfg.MCP, a.logger.Logger())
	a.registerRPCMethods()

	return a, nil
}

// registerTools records the configured collaborators in the tool registry
// so status output can enumerate them.
func (a *Agent) registerTools() error {
	register := func(t tool.Tool) error {
		if err := a.tools.Register(t); err != nil {
			return types.WrapError(types.TOOL_INVALID, "registering tool", err)
		}
		return nil
	}
	if t, ok := a.searcher.(tool.Tool); ok {
		if err := register(t); err != nil {
			return err
		}
	}
	if t, ok := a.extractor.(tool.Tool); ok {
		if err := register(t); err != nil {
			return err
		}
	}
	return nil
}

// Start launches the enabled protocol servers. Each runs on its own
// listener; a listener failure is logged rather than tearing down the
// whole agent.
func (a *Agent) Start(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return fmt.Errorf("agent already running")
	}
	a.startedAt = time.Now()

	if a.cfg.A2A.Enabled {
		a.peerSrv = a2a.NewServer(a.peers, a.logger.Logger())
		go func() {
			if err := a.peerSrv.Start(); err != nil {
				a.logger.Error(ctx, "peer protocol server stopped", "error", err)
			}
		}()
	}
	if a.cfg.MCP.Enabled {
		a.rpcSrv = mcp.NewServer(a.rpc, a.logger.Logger())
		go func() {
			if err := a.rpcSrv.Start(); err != nil {
				a.logger.Error(ctx, "tool protocol server stopped", "error", err)
			}
		}()
	}

	a.logger.Info(ctx, "quiz agent started",
		"agent_name", a.cfg.Agent.Name,
		"a2a_enabled", a.cfg.A2A.Enabled,
		"mcp_enabled", a.cfg.MCP.Enabled)
	return nil
}

// Stop shuts down the protocol servers, draining in-flight requests.
func (a *Agent) Stop(ctx context.Context) error {
	if !a.running.CompareAndSwap(true, false) {
		return nil
	}

	var firstErr error
	if a.peerSrv != nil {
		if err := a.peerSrv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if a.rpcSrv != nil {
		if err := a.rpcSrv.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	a.logger.Info(ctx, "quiz agent stopped")
	return firstErr
}

// Peers returns the peer protocol engine.
func (a *Agent) Peers() *a2a.Protocol { return a.peers }

// RPC returns the JSON-RPC engine.
func (a *Agent) RPC() *mcp.Protocol { return a.rpc }

// Sessions returns the session store.
func (a *Agent) Sessions() *session.Store { return a.store }

// ProcessTurn runs one instruction through the workflow for the given
// session and returns the resulting state. The session is exclusively
// owned for the duration of the turn; node failures land in the state's
// error fields, not in the returned error.
func (a *Agent) ProcessTurn(ctx context.Context, sessionID, userInput string) (*session.State, error) {
	if sessionID == "" {
		sessionID = a.cfg.Agent.DefaultSession
	}

	state, release := a.store.Acquire(sessionID)
	defer release()

	logger := a.logger.WithSession(sessionID)
	logger.Info(ctx, "processing turn", "input_length", len(userInput))

	if err := state.BeginTurn(userInput); err != nil {
		return state, err
	}
	if err := a.executor.Run(ctx, state, a.handlers()); err != nil {
		return state, err
	}

	logger.Info(ctx, "turn finished",
		"operation", state.OperationType.String(),
		"status", state.Status.String(),
		"error", state.ErrorMessage)
	return state, nil
}
