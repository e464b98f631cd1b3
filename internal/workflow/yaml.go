package workflow

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

// Definition is the YAML form of a workflow graph.
type Definition struct {
	Name         string            `yaml:"name"`
	Entry        string            `yaml:"entry"`
	Terminal     string            `yaml:"terminal"`
	Edges        map[string]string `yaml:"edges"`
	Routes       map[string]string `yaml:"routes"`
	DefaultRoute string            `yaml:"default_route"`
}

// ToGraph converts the definition into a validated graph.
func (d *Definition) ToGraph() (*Graph, error) {
	g := &Graph{
		Name:         d.Name,
		Entry:        Node(d.Entry),
		Terminal:     Node(d.Terminal),
		Edges:        make(map[Node]Node, len(d.Edges)),
		Routes:       make(map[session.OperationType]Node, len(d.Routes)),
		DefaultRoute: Node(d.DefaultRoute),
	}
	for from, to := range d.Edges {
		g.Edges[Node(from)] = Node(to)
	}
	for op, target := range d.Routes {
		g.Routes[session.OperationType(op)] = Node(target)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("workflow definition %q: %w", d.Name, err)
	}
	return g, nil
}

// Parse decodes a YAML workflow definition and validates the graph.
func Parse(data []byte) (*Graph, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing workflow definition: %w", err)
	}
	return def.ToGraph()
}

// LoadFile reads a workflow definition from a YAML file.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workflow definition: %w", err)
	}
	return Parse(data)
}

// defaultGraphYAML is the built-in quiz workflow: classify routes to one
// operation node, generation chains into validation, and every path ends
// at finalize.
const defaultGraphYAML = `
name: quiz
entry: classify
terminal: finalize
edges:
  search_content: finalize
  extract_content: finalize
  generate_quiz: validate_quiz
  generate_question: finalize
  validate_quiz: finalize
  handle_a2a: finalize
  handle_mcp: finalize
routes:
  search: search_content
  extract: extract_content
  generate_quiz: generate_quiz
  generate_question: generate_question
  validate: validate_quiz
  a2a: handle_a2a
  mcp: handle_mcp
default_route: generate_quiz
`

var (
	quizGraphOnce sync.Once
	quizGraph     *Graph
	quizGraphErr  error
)

// QuizGraph returns the built-in quiz workflow graph. The embedded
// definition is parsed once; a parse failure here is a programming error.
func QuizGraph() *Graph {
	quizGraphOnce.Do(func() {
		quizGraph, quizGraphErr = Parse([]byte(defaultGraphYAML))
	})
	if quizGraphErr != nil {
		panic(fmt.Sprintf("built-in quiz workflow is invalid: %v", quizGraphErr))
	}
	return quizGraph
}
