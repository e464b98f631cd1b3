package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

// Handler executes one workflow node against the turn's session state.
type Handler func(ctx context.Context, state *session.State) error

// HandlerMap binds node names to handlers.
type HandlerMap map[Node]Handler

// Executor walks a graph for one turn. Node failures are absorbed into the
// session state and short-circuit to the terminal node; only structural
// problems (an unbound node) surface as an error from Run.
type Executor struct {
	graph  *Graph
	logger *slog.Logger
}

// NewExecutor validates the graph and returns an executor for it.
func NewExecutor(graph *Graph, logger *slog.Logger) (*Executor, error) {
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{graph: graph, logger: logger}, nil
}

// Run executes one turn: entry first, then successors until the terminal
// node has run. A handler error or context cancellation marks the session
// failed and jumps to the terminal so the turn always finalizes.
func (e *Executor) Run(ctx context.Context, state *session.State, handlers HandlerMap) error {
	for node := range e.graph.Edges {
		if _, ok := handlers[node]; !ok {
			return fmt.Errorf("node %q has no handler", node)
		}
	}
	if _, ok := handlers[e.graph.Terminal]; !ok {
		return fmt.Errorf("terminal node %q has no handler", e.graph.Terminal)
	}

	current := e.graph.Entry
	for {
		if err := ctx.Err(); err != nil && current != e.graph.Terminal {
			state.Fail(fmt.Sprintf("turn cancelled: %v", err))
			current = e.graph.Terminal
		}

		handler, ok := handlers[current]
		if !ok {
			return fmt.Errorf("node %q has no handler", current)
		}

		e.logger.Debug("executing workflow node",
			"node", current.String(),
			"session_id", state.SessionID,
			"operation", state.OperationType.String())

		if err := handler(ctx, state); err != nil {
			if current == e.graph.Terminal {
				return fmt.Errorf("terminal node %s: %w", current, err)
			}
			e.logger.Warn("workflow node failed",
				"node", current.String(),
				"session_id", state.SessionID,
				"error", err)
			state.Fail(err.Error())
			current = e.graph.Terminal
			continue
		}

		if current == e.graph.Terminal {
			return nil
		}
		current = e.graph.Next(current, state.OperationType)
	}
}
