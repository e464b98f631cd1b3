package tool

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// Registry is a thread-safe name-indexed collection of tools. Unlike the
// protocol handler registries, duplicate registration here is an error:
// tools are wired once at construction and a name collision indicates a
// programming mistake, not a handler override.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Returns TOOL_ALREADY_REGISTERED if the name is
// taken and TOOL_INVALID for nil or unnamed tools.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return types.NewError(types.TOOL_INVALID, "tool cannot be nil")
	}
	name := t.Name()
	if name == "" {
		return types.NewError(types.TOOL_INVALID, "tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return types.NewError(types.TOOL_ALREADY_REGISTERED, fmt.Sprintf("tool %q already registered", name))
	}
	r.tools[name] = t
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.tools[name]
	if !exists {
		return nil, types.NewError(types.TOOL_NOT_FOUND, fmt.Sprintf("tool %q not found", name))
	}
	return t, nil
}

// Names returns the sorted names of all registered tools.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
