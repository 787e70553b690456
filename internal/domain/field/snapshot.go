package field

import "driveyard/internal/domain/grid"

// Snapshot is the read-only sensor view handed to a drive each tick.
// Drives holds the other drives' current cells; the receiving drive's
// own position is Player.
type Snapshot struct {
	Tick       int64        `json:"tick"`
	Player     grid.State   `json:"player"`
	Boundaries []grid.State `json:"boundaries"`
	Drives     []grid.State `json:"drives"`
	Pods       []grid.State `json:"pods"`
	Goals      []grid.State `json:"goals"`
	// Goal is the legacy single-goal field, kept for compatibility with
	// older harness clients. It mirrors the first entry of Goals.
	Goal grid.State `json:"goal"`

	// Advanced mode only.
	TargetPod   *grid.State `json:"target_pod,omitempty"`
	LiftedPairs [][2]int    `json:"lifted_pairs,omitempty"`
}

// BlockedSet builds a lookup set from boundary cells.
func BlockedSet(cells []grid.State) map[grid.State]struct{} {
	out := make(map[grid.State]struct{}, len(cells))
	for _, c := range cells {
		out[c] = struct{}{}
	}
	return out
}
