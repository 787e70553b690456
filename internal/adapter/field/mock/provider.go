package mock

import (
	"context"

	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

// Provider serves a fixed snapshot with the caller's position and tick
// stamped in. Test helper.
type Provider struct {
	Snapshot field.Snapshot
	Err      error
}

func (p Provider) SnapshotForDrive(_ context.Context, _ string, pos grid.State, tick int64) (field.Snapshot, error) {
	if p.Err != nil {
		return field.Snapshot{}, p.Err
	}
	s := p.Snapshot
	s.Player = pos
	s.Tick = tick
	if len(s.Goals) > 0 {
		s.Goal = s.Goals[0]
	}
	return s, nil
}
