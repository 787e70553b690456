package memory

import (
	"context"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
)

type DriveStateRepo struct {
	store *Store
}

func NewDriveStateRepo(store *Store) DriveStateRepo {
	return DriveStateRepo{store: store}
}

func (r DriveStateRepo) GetByDriveID(ctx context.Context, driveID string) (drive.StateAggregate, error) {
	defer r.store.acquireRead(ctx)()
	state, ok := r.store.state[driveID]
	if !ok {
		return drive.StateAggregate{}, ports.ErrNotFound
	}
	return state, nil
}

func (r DriveStateRepo) SaveWithVersion(ctx context.Context, state drive.StateAggregate, expectedVersion int64) error {
	defer r.store.acquire(ctx)()
	current, ok := r.store.state[state.DriveID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.state[state.DriveID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.state[state.DriveID] = state
	return nil
}
