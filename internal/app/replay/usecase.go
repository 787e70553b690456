package replay

import (
	"context"
	"errors"
	"strings"
	"time"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

// Execute returns a drive's event history newest first, together with the
// trajectory reconstructed from the state_after payloads.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.DriveID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByDriveID(ctx, req.DriveID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	trajectory := reconstructTrajectory(events)
	latest := drive.StateAggregate{DriveID: req.DriveID}
	if len(trajectory) > 0 {
		last := trajectory[len(trajectory)-1]
		latest.Pos = last.Pos
		latest.Tick = last.Tick
	}
	return Response{Events: events, Trajectory: trajectory, LatestState: latest}, nil
}

func filterByTimeWindow(events []drive.DomainEvent, from, to int64) []drive.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]drive.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// reconstructTrajectory walks the newest-first event list backwards so the
// returned points run oldest to newest.
func reconstructTrajectory(events []drive.DomainEvent) []TrajectoryPoint {
	out := make([]TrajectoryPoint, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		after, ok := events[i].Payload["state_after"].(map[string]any)
		if !ok {
			continue
		}
		out = append(out, TrajectoryPoint{
			Pos:  grid.State{X: int(num(after["x"])), Y: int(num(after["y"]))},
			Tick: int64(num(after["tick"])),
		})
	}
	return out
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		if t, ok := v.(time.Time); ok {
			return float64(t.Unix())
		}
		return 0
	}
}
