package memory

import (
	"context"

	"driveyard/internal/app/ports"
)

type DriveCredentialRepo struct {
	store *Store
}

func NewDriveCredentialRepo(store *Store) DriveCredentialRepo {
	return DriveCredentialRepo{store: store}
}

func (r DriveCredentialRepo) Create(ctx context.Context, credential ports.DriveCredentialRecord) error {
	defer r.store.acquire(ctx)()
	if _, exists := r.store.creds[credential.DriveID]; exists {
		return ports.ErrConflict
	}
	r.store.creds[credential.DriveID] = credential
	return nil
}

func (r DriveCredentialRepo) GetByDriveID(ctx context.Context, driveID string) (ports.DriveCredentialRecord, error) {
	defer r.store.acquireRead(ctx)()
	cred, ok := r.store.creds[driveID]
	if !ok {
		return ports.DriveCredentialRecord{}, ports.ErrNotFound
	}
	return cred, nil
}
