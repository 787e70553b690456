package drive

import "driveyard/internal/domain/grid"

// ClosestGoal picks the goal nearest to from by straight-line distance.
// Ties keep the first-listed candidate.
func ClosestGoal(goals []grid.State, from grid.State) (grid.State, error) {
	if len(goals) == 0 {
		return grid.State{}, ErrNoGoals
	}
	best := goals[0]
	bestDist := from.DistanceTo(best)
	for _, g := range goals[1:] {
		if d := from.DistanceTo(g); d < bestDist {
			best, bestDist = g, d
		}
	}
	return best, nil
}
