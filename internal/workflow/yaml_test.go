package workflow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-XX23/quiz-agentic/internal/session"
)

func TestParseDefinition(t *testing.T) {
	data := []byte(`
name: mini
entry: classify
terminal: finalize
edges:
  work: finalize
routes:
  search: work
default_route: work
`)
	g, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "mini", g.Name)
	assert.Equal(t, Node("work"), g.Next(g.Entry, session.OpSearch))
	assert.Equal(t, Node("work"), g.Next(g.Entry, session.OpMCP))
	assert.Equal(t, Node("finalize"), g.Next("work", session.OpSearch))
}

func TestParseRejectsInvalidGraph(t *testing.T) {
	data := []byte(`
name: broken
entry: classify
terminal: finalize
edges:
  a: b
  b: a
routes: {}
default_route: a
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("edges: [not: a: map"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(defaultGraphYAML), 0o644))

	g, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "quiz", g.Name)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
