package replay

import (
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"
)

type Request struct {
	DriveID      string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

// TrajectoryPoint is one reconstructed position, oldest first.
type TrajectoryPoint struct {
	Pos  grid.State `json:"pos"`
	Tick int64      `json:"tick"`
}

type Response struct {
	Events      []drive.DomainEvent  `json:"events"`
	Trajectory  []TrajectoryPoint    `json:"trajectory"`
	LatestState drive.StateAggregate `json:"latest_state"`
}
