package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

func openSnapshot(player grid.State, goals ...grid.State) field.Snapshot {
	return field.Snapshot{Player: player, Goals: goals}
}

func TestAgentWalksToGoalOverTwoTicks(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	pos := grid.State{X: 0, Y: 0}
	goal := grid.State{X: 2, Y: 0}

	var net grid.State
	for tick := 0; tick < 2; tick++ {
		res, err := a.Step(openSnapshot(pos, goal))
		require.NoError(t, err)
		pos = pos.Apply(res.Move)
		dx, dy := res.Move.Delta()
		net.X += dx
		net.Y += dy
	}
	assert.Equal(t, grid.State{X: 2, Y: 0}, net, "two ticks should net (+2,0)")
	assert.Equal(t, goal, pos)
}

func TestAgentCollisionGuardHoldsThenMoves(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	start := grid.State{X: 2, Y: 2}
	goal := grid.State{X: 2, Y: 4}

	// First plan, then another drive parks on the next step (2,3).
	snap := openSnapshot(start, goal)
	snap.Drives = []grid.State{{X: 2, Y: 3}}
	res, err := a.Step(snap)
	require.NoError(t, err)
	assert.Equal(t, grid.MoveNone, res.Move)
	assert.True(t, res.Held)
	require.NotNil(t, res.Blocked)
	assert.Equal(t, grid.State{X: 2, Y: 3}, *res.Blocked)

	// Obstacle gone: the originally intended move comes out.
	res, err = a.Step(openSnapshot(start, goal))
	require.NoError(t, err)
	assert.Equal(t, grid.MoveUp, res.Move)
	assert.False(t, res.Held)
}

func TestAgentReplansAfterExhaustion(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	pos := grid.State{X: 0, Y: 0}

	res, err := a.Step(openSnapshot(pos, grid.State{X: 1, Y: 0}))
	require.NoError(t, err)
	assert.Equal(t, grid.MoveRight, res.Move)
	assert.True(t, res.Replanned)
	assert.Zero(t, a.PlanRemaining())
	pos = pos.Apply(res.Move)

	// Plan is exhausted; a new goal triggers a fresh plan.
	res, err = a.Step(openSnapshot(pos, grid.State{X: 1, Y: 2}))
	require.NoError(t, err)
	assert.True(t, res.Replanned)
	assert.Equal(t, grid.MoveUp, res.Move)
}

func TestAgentAlreadyOnGoalIdles(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	pos := grid.State{X: 3, Y: 3}

	res, err := a.Step(openSnapshot(pos, pos))
	require.NoError(t, err)
	assert.Equal(t, grid.MoveNone, res.Move)
	assert.True(t, res.Replanned)
	assert.Equal(t, 1, res.PlanLength)
}

func TestAgentNoGoals(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	_, err := a.Step(openSnapshot(grid.State{}))
	require.ErrorIs(t, err, ErrNoGoals)
}

func TestAgentNoPathLeavesPlanEmpty(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	pos := grid.State{X: 0, Y: 0}
	goal := grid.State{X: 2, Y: 0}
	snap := openSnapshot(pos, goal)
	// Box the drive in completely.
	snap.Boundaries = []grid.State{
		{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	}

	_, err := a.Step(snap)
	require.ErrorIs(t, err, ErrNoPathFound)
	assert.Zero(t, a.PlanRemaining())

	// Next tick with the box opened succeeds.
	res, err := a.Step(openSnapshot(pos, goal))
	require.NoError(t, err)
	assert.True(t, res.Replanned)
	assert.NotEqual(t, grid.MoveNone, res.Move)
}

func TestAgentAdvancedModeUnsupported(t *testing.T) {
	a := NewAgent("drv-1", ModeAdvanced, Planner{})
	res, err := a.Step(openSnapshot(grid.State{}, grid.State{X: 1, Y: 1}))
	require.ErrorIs(t, err, ErrUnsupportedMode)
	assert.Equal(t, grid.MoveNone, res.Move)
}

func TestAgentPlanCorruptionRecovers(t *testing.T) {
	a := NewAgent("drv-1", ModeBasic, Planner{})
	a.plan = []grid.State{{X: 0, Y: 0}, {X: 5, Y: 5}}

	res, err := a.Step(openSnapshot(grid.State{X: 0, Y: 0}, grid.State{X: 5, Y: 5}))
	require.ErrorIs(t, err, ErrPlanCorrupted)
	assert.Equal(t, grid.MoveNone, res.Move)

	// The broken plan is discarded; the agent replans cleanly.
	res, err = a.Step(openSnapshot(grid.State{X: 0, Y: 0}, grid.State{X: 1, Y: 0}))
	require.NoError(t, err)
	assert.True(t, res.Replanned)
	assert.Equal(t, grid.MoveRight, res.Move)
}

func TestRegistryReusesAgents(t *testing.T) {
	r := NewRegistry(Planner{})
	a := r.Acquire("drv-1", ModeBasic)
	assert.Same(t, a, r.Acquire("drv-1", ModeBasic))

	r.Drop("drv-1")
	assert.NotSame(t, a, r.Acquire("drv-1", ModeBasic))
	assert.Zero(t, r.PlanRemaining("drv-404"))
}
