package a2a

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Endpoint describes one known peer agent.
type Endpoint struct {
	AgentID  string    `json:"agent_id"`
	Host     string    `json:"host"`
	Port     int       `json:"port"`
	Active   bool      `json:"active"`
	LastSeen time.Time `json:"last_seen"`
}

// Address returns the peer's host:port pair.
func (e Endpoint) Address() string {
	return fmt.Sprintf("%s:%d", e.Host, e.Port)
}

// EndpointRegistry tracks known peers. Registration is an idempotent
// upsert; endpoints are marked inactive rather than deleted so a flapping
// peer keeps its history.
type EndpointRegistry struct {
	mu        sync.RWMutex
	endpoints map[string]*Endpoint
}

// NewEndpointRegistry creates an empty registry.
func NewEndpointRegistry() *EndpointRegistry {
	return &EndpointRegistry{endpoints: make(map[string]*Endpoint)}
}

// Register upserts a peer endpoint and marks it active.
func (r *EndpointRegistry) Register(agentID, host string, port int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.endpoints[agentID] = &Endpoint{
		AgentID:  agentID,
		Host:     host,
		Port:     port,
		Active:   true,
		LastSeen: time.Now(),
	}
}

// Get returns a copy of the endpoint for agentID.
func (r *EndpointRegistry) Get(agentID string) (Endpoint, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.endpoints[agentID]; ok {
		return *e, true
	}
	return Endpoint{}, false
}

// Touch refreshes the peer's last-seen timestamp and reactivates it.
func (r *EndpointRegistry) Touch(agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.endpoints[agentID]; ok {
		e.Active = true
		e.LastSeen = time.Now()
	}
}

// MarkInactive flags a peer as unreachable without forgetting it.
func (r *EndpointRegistry) MarkInactive(agentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.endpoints[agentID]; ok {
		e.Active = false
	}
}

// Active returns copies of all active endpoints sorted by agent id.
func (r *EndpointRegistry) Active() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]Endpoint, 0, len(r.endpoints))
	for _, e := range r.endpoints {
		if e.Active {
			active = append(active, *e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].AgentID < active[j].AgentID })
	return active
}

// All returns copies of every known endpoint sorted by agent id.
func (r *EndpointRegistry) All() []Endpoint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Endpoint, 0, len(r.endpoints))
	for _, e := range r.endpoints {
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AgentID < all[j].AgentID })
	return all
}

// Len returns the number of known endpoints, active or not.
func (r *EndpointRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.endpoints)
}
