package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

func TestNewOpenAIRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAI(Config{Provider: "openai"})
	require.Error(t, err)

	var agentErr *types.AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, types.CONFIG_MISSING_API_KEY, agentErr.Code)
}

func TestNewOpenAIFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	gen, err := NewOpenAI(Config{Provider: "openai", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "openai", gen.Name())
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "carrier-pigeon"})
	require.Error(t, err)

	var agentErr *types.AgentError
	require.ErrorAs(t, err, &agentErr)
	assert.Equal(t, types.CONFIG_VALIDATION_FAILED, agentErr.Code)
}

func TestMockReplaysResponses(t *testing.T) {
	gen := NewMock("first", "second")

	out, err := gen.Generate(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "first", out)

	out, err = gen.Generate(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "second", out)

	// Exhausted script repeats the last response.
	out, err = gen.Generate(context.Background(), "p3")
	require.NoError(t, err)
	assert.Equal(t, "second", out)

	assert.Equal(t, []string{"p1", "p2", "p3"}, gen.Calls())
}

func TestMockError(t *testing.T) {
	boom := errors.New("boom")
	gen := NewMockError(boom)

	_, err := gen.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
}

func TestMockHonorsCancelledContext(t *testing.T) {
	gen := NewMock("never")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gen.Generate(ctx, "p")
	assert.ErrorIs(t, err, context.Canceled)
}
