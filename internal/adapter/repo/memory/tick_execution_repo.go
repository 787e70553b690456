package memory

import (
	"context"

	"driveyard/internal/app/ports"
)

type TickExecutionRepo struct {
	store *Store
}

func NewTickExecutionRepo(store *Store) TickExecutionRepo {
	return TickExecutionRepo{store: store}
}

func (r TickExecutionRepo) GetByIdempotencyKey(ctx context.Context, driveID, key string) (*ports.TickRecord, error) {
	defer r.store.acquireRead(ctx)()
	rec, ok := r.store.execution[execKey(driveID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := rec
	return &copy, nil
}

func (r TickExecutionRepo) SaveExecution(ctx context.Context, record ports.TickRecord) error {
	defer r.store.acquire(ctx)()
	k := execKey(record.DriveID, record.IdempotencyKey)
	if _, exists := r.store.execution[k]; exists {
		return ports.ErrConflict
	}
	r.store.execution[k] = record
	return nil
}
