package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAcquireCreates(t *testing.T) {
	store := NewStore()

	state, release := store.Acquire("alpha")
	assert.Equal(t, "alpha", state.SessionID)
	assert.Equal(t, StatusIdle, state.Status)
	release()

	again, release := store.Acquire("alpha")
	assert.Same(t, state, again)
	release()

	assert.Equal(t, 1, store.Len())
}

func TestStorePeek(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Peek("missing"))

	_, release := store.Acquire("alpha")
	release()
	assert.NotNil(t, store.Peek("alpha"))
}

func TestStoreConcurrentSessionsAreIndependent(t *testing.T) {
	store := NewStore()
	const turns = 50

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("session-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < turns; j++ {
				state, release := store.Acquire(id)
				require.NoError(t, state.BeginTurn("turn"))
				state.AppendExtractedContent("chunk")
				state.Finalize()
				release()
			}
		}()
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		state := store.Peek(fmt.Sprintf("session-%d", i))
		require.NotNil(t, state)
		// No cross-session bleed: each session saw exactly its own turns.
		assert.Len(t, state.ExtractedContent, turns)
		assert.Equal(t, StatusIdle, state.Status)
	}

	assert.Equal(t, []string{"session-0", "session-1", "session-2", "session-3"}, store.Sessions())
}

func TestStoreSameSessionSerializes(t *testing.T) {
	store := NewStore()
	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				state, release := store.Acquire("shared")
				state.AppendToolOutput("probe", nil)
				release()
			}
		}()
	}
	wg.Wait()

	state := store.Peek("shared")
	require.NotNil(t, state)
	assert.Len(t, state.ToolOutputs, writers*perWriter)
}
