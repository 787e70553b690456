package ports

import (
	"context"

	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

// FieldProvider produces the per-tick sensor snapshot for one drive.
// pos is the drive's own cell, tick the drive's current tick count.
type FieldProvider interface {
	SnapshotForDrive(ctx context.Context, driveID string, pos grid.State, tick int64) (field.Snapshot, error)
}
