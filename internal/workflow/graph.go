// Package workflow implements the operation-routing state machine: a fixed
// directed node graph with one entry, one terminal, and no cycles. The
// graph is data (a transition table plus a classification routing table),
// which keeps the structural invariants mechanically checkable.
package workflow

import (
	"fmt"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

// Node names a workflow step.
type Node string

const (
	NodeClassify         Node = "classify"
	NodeSearch           Node = "search_content"
	NodeExtract          Node = "extract_content"
	NodeGenerateQuiz     Node = "generate_quiz"
	NodeGenerateQuestion Node = "generate_question"
	NodeValidate         Node = "validate_quiz"
	NodeA2A              Node = "handle_a2a"
	NodeMCP              Node = "handle_mcp"
	NodeFinalize         Node = "finalize"
)

func (n Node) String() string { return string(n) }

// Graph is a workflow definition: a single entry node, a single terminal
// node, unconditional edges for every non-terminal node, and a routing
// table mapping the classified operation to the entry's successor.
type Graph struct {
	Name     string
	Entry    Node
	Terminal Node

	// Edges maps each node to its unconditional successor. The entry node
	// does not appear here; its successor is chosen by Routes.
	Edges map[Node]Node

	// Routes maps an operation type to the node that handles it. Missing
	// operations fall back to DefaultRoute.
	Routes map[session.OperationType]Node

	// DefaultRoute handles operations absent from Routes.
	DefaultRoute Node
}

// Next returns the successor of n. The entry node routes by operation.
func (g *Graph) Next(n Node, op session.OperationType) Node {
	if n == g.Entry {
		if target, ok := g.Routes[op]; ok {
			return target
		}
		return g.DefaultRoute
	}
	return g.Edges[n]
}

// Validate checks the structural invariants: the entry and terminal exist,
// the terminal has no outgoing edge, every route target is a known node,
// and every node reaches the terminal without cycles.
func (g *Graph) Validate() error {
	if g.Entry == "" {
		return fmt.Errorf("workflow %q has no entry node", g.Name)
	}
	if g.Terminal == "" {
		return fmt.Errorf("workflow %q has no terminal node", g.Name)
	}
	if _, ok := g.Edges[g.Terminal]; ok {
		return fmt.Errorf("terminal node %q must not have an outgoing edge", g.Terminal)
	}
	if g.DefaultRoute == "" {
		return fmt.Errorf("workflow %q has no default route", g.Name)
	}

	targets := make([]Node, 0, len(g.Routes)+1)
	targets = append(targets, g.DefaultRoute)
	for _, target := range g.Routes {
		targets = append(targets, target)
	}
	for _, target := range targets {
		if target != g.Terminal {
			if _, ok := g.Edges[target]; !ok {
				return fmt.Errorf("route target %q is not a known node", target)
			}
		}
		if err := g.reachesTerminal(target); err != nil {
			return err
		}
	}
	for node := range g.Edges {
		if err := g.reachesTerminal(node); err != nil {
			return err
		}
	}
	return nil
}

// reachesTerminal follows unconditional edges from n, bounding the walk by
// the node count so a cycle is detected rather than looping forever.
func (g *Graph) reachesTerminal(n Node) error {
	current := n
	for steps := 0; steps <= len(g.Edges)+1; steps++ {
		if current == g.Terminal {
			return nil
		}
		next, ok := g.Edges[current]
		if !ok {
			return fmt.Errorf("node %q has no path to terminal %q", n, g.Terminal)
		}
		current = next
	}
	return fmt.Errorf("cycle detected on path from node %q", n)
}
