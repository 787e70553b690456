package drive

import (
	"fmt"

	"driveyard/internal/domain/grid"
)

// DefaultMaxExpansions bounds a single planning run. Unreachable goals
// terminate by worklist exhaustion anyway; the cap keeps pathological
// open fields from stalling a tick.
const DefaultMaxExpansions = 50000

// Planner searches the grid with a greedy best-first strategy: the
// partial path whose tip lies closest to the goal is always extended
// next. The result is a connected path from start to goal, not
// necessarily a shortest one.
type Planner struct {
	// MaxExpansions limits how many partial paths are taken off the
	// worklist. Zero means DefaultMaxExpansions.
	MaxExpansions int
}

// Plan returns an ordered sequence of states from start to goal whose
// consecutive entries are one move apart, avoiding blocked cells.
func (p Planner) Plan(start, goal grid.State, blocked map[grid.State]struct{}) ([]grid.State, error) {
	maxExpansions := p.MaxExpansions
	if maxExpansions <= 0 {
		maxExpansions = DefaultMaxExpansions
	}

	visited := make(map[grid.State]struct{})
	worklist := [][]grid.State{{start}}

	for expansions := 0; len(worklist) > 0; expansions++ {
		if expansions >= maxExpansions {
			return nil, fmt.Errorf("%w: expansion budget %d exhausted", ErrNoPathFound, maxExpansions)
		}

		current := popNearest(&worklist, goal)
		tip := current[len(current)-1]
		if tip == goal {
			return current, nil
		}
		visited[tip] = struct{}{}

		for _, next := range tip.Successors() {
			if _, seen := visited[next]; seen {
				continue
			}
			if _, wall := blocked[next]; wall {
				continue
			}
			branch := make([]grid.State, len(current)+1)
			copy(branch, current)
			branch[len(current)] = next
			worklist = append(worklist, branch)
		}
	}
	return nil, ErrNoPathFound
}

// popNearest removes and returns the partial path whose tip is closest
// to goal. Ties keep the earliest-inserted path.
func popNearest(worklist *[][]grid.State, goal grid.State) []grid.State {
	paths := *worklist
	bestIdx := 0
	bestDist := paths[0][len(paths[0])-1].DistanceTo(goal)
	for i, path := range paths[1:] {
		if d := path[len(path)-1].DistanceTo(goal); d < bestDist {
			bestIdx, bestDist = i+1, d
		}
	}
	picked := paths[bestIdx]
	*worklist = append(paths[:bestIdx], paths[bestIdx+1:]...)
	return picked
}
