package memory

import (
	"context"

	"driveyard/internal/domain/drive"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, driveID string, events []drive.DomainEvent) error {
	defer r.store.acquire(ctx)()
	r.store.events[driveID] = append(r.store.events[driveID], events...)
	return nil
}

// ListByDriveID returns events newest first.
func (r EventRepo) ListByDriveID(ctx context.Context, driveID string, limit int) ([]drive.DomainEvent, error) {
	defer r.store.acquireRead(ctx)()
	stored := r.store.events[driveID]
	out := make([]drive.DomainEvent, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}
