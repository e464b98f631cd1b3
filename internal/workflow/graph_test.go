package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

func TestQuizGraphValid(t *testing.T) {
	g := QuizGraph()
	require.NoError(t, g.Validate())
	assert.Equal(t, NodeClassify, g.Entry)
	assert.Equal(t, NodeFinalize, g.Terminal)
}

func TestQuizGraphRouting(t *testing.T) {
	g := QuizGraph()

	tests := []struct {
		op   session.OperationType
		want Node
	}{
		{session.OpSearch, NodeSearch},
		{session.OpExtract, NodeExtract},
		{session.OpGenerateQuiz, NodeGenerateQuiz},
		{session.OpGenerateQuestion, NodeGenerateQuestion},
		{session.OpValidate, NodeValidate},
		{session.OpA2A, NodeA2A},
		{session.OpMCP, NodeMCP},
		{session.OpUnknown, NodeGenerateQuiz},
		{session.OperationType("garbage"), NodeGenerateQuiz},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.want, g.Next(g.Entry, tt.op))
		})
	}
}

func TestQuizGraphEdges(t *testing.T) {
	g := QuizGraph()

	assert.Equal(t, NodeFinalize, g.Next(NodeSearch, session.OpSearch))
	assert.Equal(t, NodeFinalize, g.Next(NodeExtract, session.OpExtract))
	assert.Equal(t, NodeValidate, g.Next(NodeGenerateQuiz, session.OpGenerateQuiz))
	assert.Equal(t, NodeFinalize, g.Next(NodeValidate, session.OpGenerateQuiz))
	assert.Equal(t, NodeFinalize, g.Next(NodeGenerateQuestion, session.OpGenerateQuestion))
	assert.Equal(t, NodeFinalize, g.Next(NodeA2A, session.OpA2A))
	assert.Equal(t, NodeFinalize, g.Next(NodeMCP, session.OpMCP))
}

func TestValidateRejectsCycle(t *testing.T) {
	g := &Graph{
		Name:     "cyclic",
		Entry:    "start",
		Terminal: "end",
		Edges: map[Node]Node{
			"a": "b",
			"b": "a",
		},
		Routes:       map[session.OperationType]Node{},
		DefaultRoute: "a",
	}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateRejectsDeadEnd(t *testing.T) {
	g := &Graph{
		Name:     "dangling",
		Entry:    "start",
		Terminal: "end",
		Edges: map[Node]Node{
			"a": "missing",
		},
		Routes:       map[session.OperationType]Node{},
		DefaultRoute: "a",
	}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path to terminal")
}

func TestValidateRejectsTerminalEdge(t *testing.T) {
	g := &Graph{
		Name:     "bad-terminal",
		Entry:    "start",
		Terminal: "end",
		Edges: map[Node]Node{
			"a":   "end",
			"end": "a",
		},
		Routes:       map[session.OperationType]Node{},
		DefaultRoute: "a",
	}
	assert.Error(t, g.Validate())
}

func TestValidateRejectsUnknownRouteTarget(t *testing.T) {
	g := &Graph{
		Name:     "bad-route",
		Entry:    "start",
		Terminal: "end",
		Edges: map[Node]Node{
			"a": "end",
		},
		Routes: map[session.OperationType]Node{
			session.OpSearch: "nowhere",
		},
		DefaultRoute: "a",
	}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a known node")
}

func testHandlers(visited *[]Node) HandlerMap {
	record := func(n Node) Handler {
		return func(ctx context.Context, state *session.State) error {
			*visited = append(*visited, n)
			return nil
		}
	}
	handlers := HandlerMap{}
	for _, n := range []Node{
		NodeSearch, NodeExtract, NodeGenerateQuiz, NodeGenerateQuestion,
		NodeValidate, NodeA2A, NodeMCP,
	} {
		handlers[n] = record(n)
	}
	handlers[NodeClassify] = func(ctx context.Context, state *session.State) error {
		*visited = append(*visited, NodeClassify)
		state.SetOperation(session.OpSearch)
		return nil
	}
	handlers[NodeFinalize] = func(ctx context.Context, state *session.State) error {
		*visited = append(*visited, NodeFinalize)
		state.Finalize()
		return nil
	}
	return handlers
}

func TestExecutorWalksSearchChain(t *testing.T) {
	var visited []Node
	handlers := testHandlers(&visited)

	exec, err := NewExecutor(QuizGraph(), nil)
	require.NoError(t, err)

	state := session.New("s1")
	require.NoError(t, state.BeginTurn("search for go routines"))
	require.NoError(t, exec.Run(context.Background(), state, handlers))

	assert.Equal(t, []Node{NodeClassify, NodeSearch, NodeFinalize}, visited)
	assert.Equal(t, session.StatusIdle, state.Status)
}

func TestExecutorAbsorbsNodeFailure(t *testing.T) {
	var visited []Node
	handlers := testHandlers(&visited)
	handlers[NodeSearch] = func(ctx context.Context, state *session.State) error {
		return errors.New("search backend unavailable")
	}

	exec, err := NewExecutor(QuizGraph(), nil)
	require.NoError(t, err)

	state := session.New("s1")
	require.NoError(t, state.BeginTurn("search for go routines"))
	require.NoError(t, exec.Run(context.Background(), state, handlers))

	// The failing node jumps straight to finalize; extract never runs.
	assert.Equal(t, []Node{NodeClassify, NodeFinalize}, visited)
	assert.Equal(t, session.StatusError, state.Status)
	assert.Equal(t, "search backend unavailable", state.ErrorMessage)
}

func TestExecutorCancelledContextFinalizes(t *testing.T) {
	var visited []Node
	handlers := testHandlers(&visited)

	exec, err := NewExecutor(QuizGraph(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state := session.New("s1")
	require.NoError(t, state.BeginTurn("search for go routines"))
	require.NoError(t, exec.Run(ctx, state, handlers))

	assert.Equal(t, []Node{NodeFinalize}, visited)
	assert.Equal(t, session.StatusError, state.Status)
	assert.Contains(t, state.ErrorMessage, "cancelled")
}

func TestExecutorRejectsMissingHandler(t *testing.T) {
	var visited []Node
	handlers := testHandlers(&visited)
	delete(handlers, NodeValidate)

	exec, err := NewExecutor(QuizGraph(), nil)
	require.NoError(t, err)

	state := session.New("s1")
	require.NoError(t, state.BeginTurn("anything"))
	err = exec.Run(context.Background(), state, handlers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no handler")
}
