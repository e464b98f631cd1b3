package llm

import (
	"context"
	"sync"
)

// MockGenerator is a scripted Generator for tests. Responses are returned
// in order; the last response repeats once the script is exhausted.
type MockGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     []string
}

// NewMock creates a generator that replays the given responses.
func NewMock(responses ...string) *MockGenerator {
	return &MockGenerator{responses: responses}
}

// NewMockError creates a generator that always fails with err.
func NewMockError(err error) *MockGenerator {
	return &MockGenerator{err: err}
}

func (m *MockGenerator) Name() string {
	return "mock"
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

// Calls returns the prompts received so far.
func (m *MockGenerator) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
