package tick

import (
	"context"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	byDrive map[string]drive.StateAggregate
}

func (r *stubStateRepo) GetByDriveID(_ context.Context, driveID string) (drive.StateAggregate, error) {
	state, ok := r.byDrive[driveID]
	if !ok {
		return drive.StateAggregate{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, state drive.StateAggregate, expectedVersion int64) error {
	current, ok := r.byDrive[state.DriveID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byDrive[state.DriveID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byDrive[state.DriveID] = state
	return nil
}

type stubTickRepo struct {
	byKey map[string]ports.TickRecord
}

func (r *stubTickRepo) GetByIdempotencyKey(_ context.Context, driveID, key string) (*ports.TickRecord, error) {
	record, ok := r.byKey[driveID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubTickRepo) SaveExecution(_ context.Context, record ports.TickRecord) error {
	key := record.DriveID + "|" + record.IdempotencyKey
	if _, exists := r.byKey[key]; exists {
		return ports.ErrConflict
	}
	r.byKey[key] = record
	return nil
}

type stubEventRepo struct {
	byDrive map[string][]drive.DomainEvent
}

func (r *stubEventRepo) Append(_ context.Context, driveID string, events []drive.DomainEvent) error {
	r.byDrive[driveID] = append(r.byDrive[driveID], events...)
	return nil
}

func (r *stubEventRepo) ListByDriveID(_ context.Context, driveID string, limit int) ([]drive.DomainEvent, error) {
	events := r.byDrive[driveID]
	if len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]drive.DomainEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

type recordingMetrics struct {
	success      int
	replans      int
	planFailures int
	conflicts    int
	failures     int
	lastCode     drive.ResultCode
	lastMove     string
}

func (m *recordingMetrics) RecordSuccess(code drive.ResultCode, move string) {
	m.success++
	m.lastCode = code
	m.lastMove = move
}
func (m *recordingMetrics) RecordReplan()      { m.replans++ }
func (m *recordingMetrics) RecordPlanFailure() { m.planFailures++ }
func (m *recordingMetrics) RecordConflict()    { m.conflicts++ }
func (m *recordingMetrics) RecordFailure()     { m.failures++ }
