package status

import (
	"context"
	"errors"
	"testing"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"
)

type stubStateRepo struct {
	byDrive map[string]drive.StateAggregate
}

func (r *stubStateRepo) GetByDriveID(ctx context.Context, driveID string) (drive.StateAggregate, error) {
	state, ok := r.byDrive[driveID]
	if !ok {
		return drive.StateAggregate{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(ctx context.Context, state drive.StateAggregate, expected int64) error {
	r.byDrive[state.DriveID] = state
	return nil
}

type fixedPlans int

func (p fixedPlans) PlanRemaining(string) int { return int(p) }

func TestExecuteReturnsStateAndPlan(t *testing.T) {
	states := &stubStateRepo{byDrive: map[string]drive.StateAggregate{
		"drv-1": {DriveID: "drv-1", Pos: grid.State{X: 3, Y: 1}, Tick: 9, Version: 10},
	}}
	uc := UseCase{StateRepo: states, Plans: fixedPlans(4)}

	resp, err := uc.Execute(context.Background(), Request{DriveID: "drv-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.State.Pos != (grid.State{X: 3, Y: 1}) || resp.State.Tick != 9 {
		t.Fatalf("unexpected state %+v", resp.State)
	}
	if resp.PlanRemaining != 4 {
		t.Fatalf("unexpected plan remaining %d", resp.PlanRemaining)
	}
}

func TestExecuteWithoutPlanProvider(t *testing.T) {
	states := &stubStateRepo{byDrive: map[string]drive.StateAggregate{
		"drv-1": {DriveID: "drv-1"},
	}}
	uc := UseCase{StateRepo: states}

	resp, err := uc.Execute(context.Background(), Request{DriveID: "drv-1"})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if resp.PlanRemaining != 0 {
		t.Fatalf("expected zero plan remaining, got %d", resp.PlanRemaining)
	}
}

func TestExecuteValidation(t *testing.T) {
	uc := UseCase{StateRepo: &stubStateRepo{byDrive: map[string]drive.StateAggregate{}}}
	if _, err := uc.Execute(context.Background(), Request{DriveID: ""}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), Request{DriveID: "drv-404"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
