package tick

import "driveyard/internal/domain/drive"

type Request struct {
	DriveID        string
	IdempotencyKey string
}

type Response struct {
	Move          string               `json:"move"`
	ResultCode    drive.ResultCode     `json:"result_code"`
	Held          bool                 `json:"held"`
	Replanned     bool                 `json:"replanned"`
	PlanRemaining int                  `json:"plan_remaining"`
	Tick          int64                `json:"tick"`
	State         drive.StateAggregate `json:"state"`
}
