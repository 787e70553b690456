package drive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driveyard/internal/domain/grid"
)

func TestClosestGoalPicksNearest(t *testing.T) {
	got, err := ClosestGoal([]grid.State{{X: 0, Y: 0}, {X: 10, Y: 10}}, grid.State{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, grid.State{X: 0, Y: 0}, got)
}

func TestClosestGoalTieKeepsFirstListed(t *testing.T) {
	got, err := ClosestGoal([]grid.State{{X: 0, Y: 1}, {X: 1, Y: 0}}, grid.State{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, grid.State{X: 0, Y: 1}, got)
}

func TestClosestGoalEmptyInput(t *testing.T) {
	_, err := ClosestGoal(nil, grid.State{})
	require.ErrorIs(t, err, ErrNoGoals)
}
