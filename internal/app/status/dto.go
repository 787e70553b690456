package status

import "driveyard/internal/domain/drive"

type Request struct {
	DriveID string
}

type Response struct {
	State         drive.StateAggregate `json:"state"`
	PlanRemaining int                  `json:"plan_remaining"`
}
