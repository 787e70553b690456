package ports

import (
	"context"
	"time"

	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/field"
)

// TickRecord is the stored outcome of one tick call, used for
// idempotent replays of the same idempotency key.
type TickRecord struct {
	DriveID        string
	IdempotencyKey string
	Move           string
	ResultCode     drive.ResultCode
	Held           bool
	Replanned      bool
	PlanRemaining  int
	State          drive.StateAggregate
	AppliedAt      time.Time
}

type DriveStateRepository interface {
	GetByDriveID(ctx context.Context, driveID string) (drive.StateAggregate, error)
	SaveWithVersion(ctx context.Context, state drive.StateAggregate, expectedVersion int64) error
}

type TickExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, driveID, key string) (*TickRecord, error)
	SaveExecution(ctx context.Context, record TickRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, driveID string, events []drive.DomainEvent) error
	ListByDriveID(ctx context.Context, driveID string, limit int) ([]drive.DomainEvent, error)
}

type DriveCredentialRecord struct {
	DriveID   string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type DriveCredentialRepository interface {
	Create(ctx context.Context, credential DriveCredentialRecord) error
	GetByDriveID(ctx context.Context, driveID string) (DriveCredentialRecord, error)
}

// FieldLayoutRepository persists named field layouts so a restarted
// service keeps serving the same warehouse.
type FieldLayoutRepository interface {
	Get(ctx context.Context, name string) (field.Layout, bool, error)
	Save(ctx context.Context, name string, layout field.Layout) error
}
