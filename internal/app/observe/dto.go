package observe

import (
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

type Request struct {
	DriveID string
}

type Response struct {
	State    drive.StateAggregate `json:"state"`
	Snapshot field.Snapshot       `json:"snapshot"`
	Tick     int64                `json:"tick"`

	View  View           `json:"view"`
	Cells []ObservedCell `json:"cells"`

	NearestGoal   *grid.State `json:"nearest_goal,omitempty"`
	GoalDistance  float64     `json:"goal_distance,omitempty"`
	BoundaryCount int         `json:"boundary_count"`
}

type View struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Center grid.State `json:"center"`
	Radius int        `json:"radius"`
}

// ObservedCell is one cell of the square window around the drive.
type ObservedCell struct {
	Pos     grid.State `json:"pos"`
	Blocked bool       `json:"blocked"`
	Drive   bool       `json:"drive"`
	Pod     bool       `json:"pod"`
	Goal    bool       `json:"goal"`
}
