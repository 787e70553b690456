package tick

import (
	"context"
	"errors"
	"strings"
	"time"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
)

var ErrInvalidRequest = errors.New("invalid tick request")

// UseCase is the per-tick inbound call: it fetches the drive's state
// and sensor snapshot, asks the agent for exactly one move, applies it
// and records the outcome. Failures inside the agent never escape the
// tick; they surface as FAILED result codes with the drive standing
// still.
type UseCase struct {
	TxManager ports.TxManager
	StateRepo ports.DriveStateRepository
	TickRepo  ports.TickExecutionRepository
	EventRepo ports.EventRepository
	Field     ports.FieldProvider
	Metrics   ports.TickMetrics
	Agents    *drive.Registry
	Now       func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.DriveID) == "" || strings.TrimSpace(req.IdempotencyKey) == "" {
		return Response{}, ErrInvalidRequest
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	var (
		resp     Response
		step     drive.StepResult
		stepErr  error
		replayed bool
	)
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		// The idempotency check has to share the transaction with the
		// write, or two requests carrying the same key can both miss it.
		if existing, err := u.TickRepo.GetByIdempotencyKey(txCtx, req.DriveID, req.IdempotencyKey); err == nil && existing != nil {
			resp = responseFromRecord(*existing)
			replayed = true
			return nil
		} else if err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}

		state, err := u.StateRepo.GetByDriveID(txCtx, req.DriveID)
		if err != nil {
			return err
		}
		snap, err := u.Field.SnapshotForDrive(txCtx, req.DriveID, state.Pos, state.Tick)
		if err != nil {
			return err
		}

		agent := u.Agents.Acquire(req.DriveID, state.Mode)
		step, stepErr = agent.Step(snap)

		now := nowFn().UTC()
		next, events, code := drive.Advance(state, step, stepErr, now)
		next.Version = state.Version + 1
		if err := u.StateRepo.SaveWithVersion(txCtx, next, state.Version); err != nil {
			return err
		}
		if err := u.EventRepo.Append(txCtx, req.DriveID, events); err != nil {
			return err
		}
		record := ports.TickRecord{
			DriveID:        req.DriveID,
			IdempotencyKey: req.IdempotencyKey,
			Move:           step.Move.String(),
			ResultCode:     code,
			Held:           step.Held,
			Replanned:      step.Replanned,
			PlanRemaining:  step.PlanRemaining,
			State:          next,
			AppliedAt:      now,
		}
		if err := u.TickRepo.SaveExecution(txCtx, record); err != nil {
			return err
		}
		resp = responseFromRecord(record)
		return nil
	})
	if err != nil {
		if errors.Is(err, ports.ErrConflict) {
			// The agent may have consumed a plan step for a tick that
			// never committed; drop it so the next tick replans.
			u.Agents.Drop(req.DriveID)
			if u.Metrics != nil {
				u.Metrics.RecordConflict()
			}
		} else if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		return Response{}, err
	}
	if replayed {
		return resp, nil
	}

	if u.Metrics != nil {
		u.Metrics.RecordSuccess(resp.ResultCode, resp.Move)
		if step.Replanned {
			u.Metrics.RecordReplan()
		}
		if errors.Is(stepErr, drive.ErrNoPathFound) || errors.Is(stepErr, drive.ErrNoGoals) {
			u.Metrics.RecordPlanFailure()
		}
	}
	return resp, nil
}

func responseFromRecord(record ports.TickRecord) Response {
	return Response{
		Move:          record.Move,
		ResultCode:    record.ResultCode,
		Held:          record.Held,
		Replanned:     record.Replanned,
		PlanRemaining: record.PlanRemaining,
		Tick:          record.State.Tick,
		State:         record.State,
	}
}
