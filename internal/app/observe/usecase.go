package observe

import (
	"context"
	"errors"
	"strings"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

var ErrInvalidRequest = errors.New("invalid observe request")

const fixedViewRadius = 5
const fixedViewSize = fixedViewRadius*2 + 1

type UseCase struct {
	StateRepo ports.DriveStateRepository
	Field     ports.FieldProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.DriveID) == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByDriveID(ctx, req.DriveID)
	if err != nil {
		return Response{}, err
	}
	snapshot, err := u.Field.SnapshotForDrive(ctx, req.DriveID, state.Pos, state.Tick)
	if err != nil {
		return Response{}, err
	}

	resp := Response{
		State:         state,
		Snapshot:      snapshot,
		Tick:          snapshot.Tick,
		BoundaryCount: len(snapshot.Boundaries),
		View: View{
			Width:  fixedViewSize,
			Height: fixedViewSize,
			Center: state.Pos,
			Radius: fixedViewRadius,
		},
		Cells: buildWindowCells(state.Pos, snapshot),
	}
	if goal, err := drive.ClosestGoal(snapshot.Goals, state.Pos); err == nil {
		resp.NearestGoal = &goal
		resp.GoalDistance = state.Pos.DistanceTo(goal)
	}
	return resp, nil
}

func buildWindowCells(center grid.State, snapshot field.Snapshot) []ObservedCell {
	blocked := field.BlockedSet(snapshot.Boundaries)
	drives := field.BlockedSet(snapshot.Drives)
	pods := field.BlockedSet(snapshot.Pods)
	goals := field.BlockedSet(snapshot.Goals)

	out := make([]ObservedCell, 0, fixedViewSize*fixedViewSize)
	for y := center.Y - fixedViewRadius; y <= center.Y+fixedViewRadius; y++ {
		for x := center.X - fixedViewRadius; x <= center.X+fixedViewRadius; x++ {
			pos := grid.State{X: x, Y: y}
			_, isBlocked := blocked[pos]
			_, isDrive := drives[pos]
			_, isPod := pods[pos]
			_, isGoal := goals[pos]
			out = append(out, ObservedCell{
				Pos:     pos,
				Blocked: isBlocked,
				Drive:   isDrive,
				Pod:     isPod,
				Goal:    isGoal,
			})
		}
	}
	return out
}
