package drive

import "sync"

// Registry hands out the per-drive Agent instances that hold plan state
// between ticks. Each agent is single-threaded by contract; the
// registry lock only guards the map.
type Registry struct {
	Planner Planner

	mu     sync.Mutex
	agents map[string]*Agent
}

func NewRegistry(planner Planner) *Registry {
	return &Registry{Planner: planner, agents: make(map[string]*Agent)}
}

// Acquire returns the agent for driveID, creating it on first use.
func (r *Registry) Acquire(driveID string, mode Mode) *Agent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.agents[driveID]; ok {
		return a
	}
	a := NewAgent(driveID, mode, r.Planner)
	r.agents[driveID] = a
	return a
}

// Drop discards the agent for driveID. The next tick starts from a
// clean plan.
func (r *Registry) Drop(driveID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.agents, driveID)
}

// PlanRemaining reports the unconsumed plan steps for driveID, zero
// when the drive has no live agent.
func (r *Registry) PlanRemaining(driveID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.agents[driveID]; ok {
		return a.PlanRemaining()
	}
	return 0
}
