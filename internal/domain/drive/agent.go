package drive

import (
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

// Agent walks a single drive through the field: it plans a path to the
// nearest goal, then consumes the plan one move per tick, holding for a
// tick whenever the next cell is occupied by another drive. The plan
// and cursor are owned exclusively by the agent; Step is the only
// mutator and runs to completion within a tick, so no locking is
// needed here.
type Agent struct {
	DriveID string
	Mode    Mode
	Planner Planner

	plan   []grid.State
	cursor int
}

// StepResult describes what a single tick produced, for events,
// metrics and the tick response.
type StepResult struct {
	Move          grid.Move
	Held          bool
	Blocked       *grid.State
	Replanned     bool
	Goal          *grid.State
	PlanLength    int
	PlanRemaining int
}

func NewAgent(driveID string, mode Mode, planner Planner) *Agent {
	return &Agent{DriveID: driveID, Mode: mode, Planner: planner}
}

// Step consumes one tick. Errors are local to the tick: the returned
// move is always valid (MoveNone on failure) and the agent recovers by
// replanning on a later tick.
func (a *Agent) Step(snap field.Snapshot) (StepResult, error) {
	res := StepResult{Move: grid.MoveNone}

	if a.needsPlan() {
		if a.Mode == ModeAdvanced {
			return res, ErrUnsupportedMode
		}
		goal, err := ClosestGoal(snap.Goals, snap.Player)
		if err != nil {
			return res, err
		}
		plan, err := a.Planner.Plan(snap.Player, goal, field.BlockedSet(snap.Boundaries))
		if err != nil {
			a.reset()
			return res, err
		}
		a.plan, a.cursor = plan, 0
		res.Replanned = true
		res.Goal = &goal
		res.PlanLength = len(plan)
		if a.needsPlan() {
			// Already standing on the goal.
			a.reset()
			return res, nil
		}
	} else {
		res.PlanLength = len(a.plan)
	}

	current := a.plan[a.cursor]
	next := a.plan[a.cursor+1]
	a.cursor++

	move, ok := grid.MoveBetween(current, next)
	if !ok {
		a.reset()
		return res, ErrPlanCorrupted
	}

	for _, other := range snap.Drives {
		if other == next {
			// Re-queue the same step and wait a tick.
			a.cursor--
			blocked := next
			res.Held = true
			res.Blocked = &blocked
			res.PlanRemaining = a.PlanRemaining()
			return res, nil
		}
	}

	res.Move = move
	res.PlanRemaining = a.PlanRemaining()
	return res, nil
}

// PlanRemaining reports how many plan steps are still unconsumed.
func (a *Agent) PlanRemaining() int {
	if a.needsPlan() {
		return 0
	}
	return len(a.plan) - 1 - a.cursor
}

// needsPlan is true when no plan is active: nothing planned yet, or
// the cursor has reached the final state.
func (a *Agent) needsPlan() bool {
	return len(a.plan) == 0 || a.cursor+1 >= len(a.plan)
}

func (a *Agent) reset() {
	a.plan, a.cursor = nil, 0
}
