package drive

import (
	"errors"
	"time"

	"driveyard/internal/domain/grid"
)

// Advance applies one tick outcome to the persisted drive state and
// emits the matching domain events. It is pure: version bumping and
// persistence stay with the caller.
func Advance(state StateAggregate, step StepResult, stepErr error, now time.Time) (StateAggregate, []DomainEvent, ResultCode) {
	next := state
	next.Tick++
	next.Pos = state.Pos.Apply(step.Move)
	next.UpdatedAt = now

	events := make([]DomainEvent, 0, 2)
	if step.Replanned {
		payload := map[string]any{
			"plan_length": step.PlanLength,
			"tick":        next.Tick,
		}
		if step.Goal != nil {
			payload["goal_x"] = step.Goal.X
			payload["goal_y"] = step.Goal.Y
		}
		events = append(events, DomainEvent{Type: EventPlanCreated, OccurredAt: now, Payload: payload})
	}

	stateAfter := map[string]any{
		"x":    next.Pos.X,
		"y":    next.Pos.Y,
		"tick": next.Tick,
	}

	code := ResultOK
	switch {
	case stepErr != nil:
		code = ResultFailed
		eventType := EventIdle
		if errors.Is(stepErr, ErrNoPathFound) || errors.Is(stepErr, ErrNoGoals) {
			eventType = EventPlanFailed
		}
		events = append(events, DomainEvent{
			Type:       eventType,
			OccurredAt: now,
			Payload: map[string]any{
				"reason":      stepErr.Error(),
				"state_after": stateAfter,
			},
		})
	case step.Held:
		code = ResultHeld
		payload := map[string]any{
			"state_after": stateAfter,
		}
		if step.Blocked != nil {
			payload["blocked_x"] = step.Blocked.X
			payload["blocked_y"] = step.Blocked.Y
		}
		events = append(events, DomainEvent{Type: EventHeld, OccurredAt: now, Payload: payload})
	case step.Move == grid.MoveNone:
		// Nothing to do this tick (for example, already on the goal).
		events = append(events, DomainEvent{
			Type:       EventIdle,
			OccurredAt: now,
			Payload:    map[string]any{"state_after": stateAfter},
		})
	default:
		events = append(events, DomainEvent{
			Type:       EventMoved,
			OccurredAt: now,
			Payload: map[string]any{
				"move":           step.Move.String(),
				"plan_remaining": step.PlanRemaining,
				"state_after":    stateAfter,
			},
		})
	}

	return next, events, code
}
