package grid

// Move is one discrete action a drive can perform in a tick.
type Move int

const (
	MoveNone Move = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	// Pod moves are accepted by the enumeration but only meaningful in
	// advanced mode, which the planner does not support.
	MoveLiftPod
	MoveDropPod
)

// walkMoves are the moves considered during path search and when
// matching consecutive plan states.
var walkMoves = [...]Move{MoveNone, MoveUp, MoveDown, MoveLeft, MoveRight}

// Delta returns the coordinate offset of the move. Positive Y is up.
func (m Move) Delta() (dx, dy int) {
	switch m {
	case MoveUp:
		return 0, 1
	case MoveDown:
		return 0, -1
	case MoveRight:
		return 1, 0
	case MoveLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Reverse returns the move that undoes m. Moves without a displacement
// are their own inverse.
func (m Move) Reverse() Move {
	switch m {
	case MoveUp:
		return MoveDown
	case MoveDown:
		return MoveUp
	case MoveLeft:
		return MoveRight
	case MoveRight:
		return MoveLeft
	default:
		return m
	}
}

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "NONE"
	case MoveUp:
		return "UP"
	case MoveDown:
		return "DOWN"
	case MoveLeft:
		return "LEFT"
	case MoveRight:
		return "RIGHT"
	case MoveLiftPod:
		return "LIFT_POD"
	case MoveDropPod:
		return "DROP_POD"
	}
	return "UNKNOWN"
}

// MoveBetween finds the single move that maps from onto to. The second
// return value is false when the two states are not one move apart.
func MoveBetween(from, to State) (Move, bool) {
	for _, m := range walkMoves {
		if from.Apply(m) == to {
			return m, true
		}
	}
	return MoveNone, false
}
