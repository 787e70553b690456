package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	fieldmock "driveyard/internal/adapter/field/mock"
	"driveyard/internal/app/auth"
	"driveyard/internal/app/tick"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

// Wires the register and tick use cases over the real memory adapters,
// the same way cmd/server does when no database is configured.
func newWiredService(snapshot field.Snapshot) (auth.RegisterUseCase, auth.VerifyUseCase, tick.UseCase) {
	store := NewStore()
	register := auth.RegisterUseCase{
		Credentials: NewDriveCredentialRepo(store),
		StateRepo:   NewDriveStateRepo(store),
		TxManager:   NewTxManager(store),
		Now:         time.Now,
	}
	verify := auth.VerifyUseCase{Credentials: NewDriveCredentialRepo(store)}
	uc := tick.UseCase{
		TxManager: NewTxManager(store),
		StateRepo: NewDriveStateRepo(store),
		TickRepo:  NewTickExecutionRepo(store),
		EventRepo: NewEventRepo(store),
		Field:     fieldmock.Provider{Snapshot: snapshot},
		Agents:    drive.NewRegistry(drive.Planner{}),
		Now:       time.Now,
	}
	return register, verify, uc
}

func TestRegisterThroughStore(t *testing.T) {
	register, verify, uc := newWiredService(field.Snapshot{Goals: []grid.State{{X: 4, Y: 0}}})
	ctx := context.Background()

	reg, err := register.Execute(ctx, auth.RegisterRequest{Mode: "basic"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := verify.Execute(ctx, auth.VerifyRequest{DriveID: reg.DriveID, DriveKey: reg.DriveKey}); err != nil {
		t.Fatalf("verify registered credentials: %v", err)
	}
	state, err := uc.StateRepo.GetByDriveID(ctx, reg.DriveID)
	if err != nil {
		t.Fatalf("seeded state: %v", err)
	}
	if state.Version != 1 || state.Mode != drive.ModeBasic {
		t.Fatalf("unexpected seeded state %+v", state)
	}
}

func TestRegisterThenTickThroughStore(t *testing.T) {
	register, _, uc := newWiredService(field.Snapshot{Goals: []grid.State{{X: 4, Y: 0}}})
	ctx := context.Background()

	reg, err := register.Execute(ctx, auth.RegisterRequest{Mode: "basic", Start: &grid.State{X: 0, Y: 0}})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	first, err := uc.Execute(ctx, tick.Request{DriveID: reg.DriveID, IdempotencyKey: "k-1"})
	if err != nil {
		t.Fatalf("first tick: %v", err)
	}
	if first.Move != "RIGHT" || first.Tick != 1 {
		t.Fatalf("unexpected first tick %+v", first)
	}

	replay, err := uc.Execute(ctx, tick.Request{DriveID: reg.DriveID, IdempotencyKey: "k-1"})
	if err != nil {
		t.Fatalf("replay tick: %v", err)
	}
	if replay.Tick != first.Tick || replay.State.Version != first.State.Version {
		t.Fatalf("replay mismatch: first=%+v replay=%+v", first, replay)
	}

	second, err := uc.Execute(ctx, tick.Request{DriveID: reg.DriveID, IdempotencyKey: "k-2"})
	if err != nil {
		t.Fatalf("second tick: %v", err)
	}
	if second.Tick != 2 || second.State.Pos != (grid.State{X: 2, Y: 0}) {
		t.Fatalf("unexpected second tick %+v", second)
	}
}

func TestConcurrentTicksThroughStore(t *testing.T) {
	register, _, uc := newWiredService(field.Snapshot{Goals: []grid.State{{X: 6, Y: 0}}})
	ctx := context.Background()

	regA, err := register.Execute(ctx, auth.RegisterRequest{Mode: "basic"})
	if err != nil {
		t.Fatalf("register drive A: %v", err)
	}
	regB, err := register.Execute(ctx, auth.RegisterRequest{Mode: "basic"})
	if err != nil {
		t.Fatalf("register drive B: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := uc.Execute(ctx, tick.Request{DriveID: regB.DriveID, IdempotencyKey: fmt.Sprintf("b-%d", i)}); err != nil {
				errs <- fmt.Errorf("drive B tick %d: %w", i, err)
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := uc.Execute(ctx, tick.Request{DriveID: regA.DriveID, IdempotencyKey: "a-shared"})
			if err != nil {
				errs <- fmt.Errorf("drive A shared-key tick: %w", err)
				return
			}
			if resp.Tick != 1 {
				errs <- fmt.Errorf("shared key must settle exactly one tick, got tick %d", resp.Tick)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	stateA, err := uc.StateRepo.GetByDriveID(ctx, regA.DriveID)
	if err != nil || stateA.Tick != 1 {
		t.Fatalf("drive A should advance exactly once, state=%+v err=%v", stateA, err)
	}
	stateB, err := uc.StateRepo.GetByDriveID(ctx, regB.DriveID)
	if err != nil || stateB.Tick != 6 {
		t.Fatalf("drive B should advance six times, state=%+v err=%v", stateB, err)
	}
}
