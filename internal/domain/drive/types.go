package drive

import (
	"time"

	"driveyard/internal/domain/grid"
)

// Mode selects the game variant the drive participates in. Advanced
// mode (pod lifting) has no planner support; advanced drives hold still
// and report failed ticks.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

// StateAggregate is the persisted view of a drive. The plan itself is
// in-memory runtime state owned by the Agent and is not part of the
// aggregate.
type StateAggregate struct {
	DriveID   string     `json:"drive_id"`
	SessionID string     `json:"session_id,omitempty"`
	Mode      Mode       `json:"mode"`
	Pos       grid.State `json:"pos"`
	Tick      int64      `json:"tick"`
	Version   int64      `json:"version"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ResultCode string

const (
	ResultOK     ResultCode = "OK"
	ResultHeld   ResultCode = "HELD"
	ResultFailed ResultCode = "FAILED"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

const (
	EventMoved       = "drive.moved"
	EventHeld        = "drive.held"
	EventIdle        = "drive.idle"
	EventPlanCreated = "drive.plan_created"
	EventPlanFailed  = "drive.plan_failed"
)
