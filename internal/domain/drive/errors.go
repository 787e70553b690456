package drive

import "errors"

var (
	// ErrNoGoals means the snapshot carried an empty goal list.
	ErrNoGoals = errors.New("no goal cells in snapshot")
	// ErrNoPathFound means the planner exhausted its worklist or its
	// expansion budget without reaching the goal.
	ErrNoPathFound = errors.New("no path to goal")
	// ErrPlanCorrupted means two consecutive plan states are not
	// connected by a single move. The planner's construction makes this
	// impossible; seeing it indicates a bug.
	ErrPlanCorrupted = errors.New("plan states not connected by a single move")
	// ErrUnsupportedMode means an advanced-mode drive asked for a plan.
	ErrUnsupportedMode = errors.New("advanced mode planning not implemented")
)
