package status

import (
	"context"
	"errors"
	"strings"

	"driveyard/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid status request")

// planProgressProvider is satisfied by *drive.Registry.
type planProgressProvider interface {
	PlanRemaining(driveID string) int
}

type UseCase struct {
	StateRepo ports.DriveStateRepository
	Plans     planProgressProvider
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.DriveID) == "" {
		return Response{}, ErrInvalidRequest
	}
	state, err := u.StateRepo.GetByDriveID(ctx, req.DriveID)
	if err != nil {
		return Response{}, err
	}
	resp := Response{State: state}
	if u.Plans != nil {
		resp.PlanRemaining = u.Plans.PlanRemaining(req.DriveID)
	}
	return resp, nil
}
