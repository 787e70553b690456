package grid

import "math"

// State is a single cell coordinate on the warehouse grid. States are
// plain values: equality and map-key hashing follow the coordinates.
type State struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Apply returns the state reached by performing m from s.
func (s State) Apply(m Move) State {
	dx, dy := m.Delta()
	return State{X: s.X + dx, Y: s.Y + dy}
}

// DistanceTo is the straight-line distance between two states.
func (s State) DistanceTo(o State) float64 {
	dx := float64(o.X - s.X)
	dy := float64(o.Y - s.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Successors lists the states reachable from s by a single move,
// later-enumerated moves first. Standing still is included; callers
// filter it out via their visited set.
func (s State) Successors() []State {
	out := make([]State, 0, len(walkMoves))
	for i := len(walkMoves) - 1; i >= 0; i-- {
		out = append(out, s.Apply(walkMoves[i]))
	}
	return out
}
