package inmemory

import (
	"sync"

	"driveyard/internal/domain/drive"
)

type Snapshot struct {
	TickTotal    uint64            `json:"tick_total"`
	TickSuccess  uint64            `json:"tick_success"`
	TickConflict uint64            `json:"tick_conflict"`
	TickFailure  uint64            `json:"tick_failure"`
	Replans      uint64            `json:"replans"`
	PlanFailures uint64            `json:"plan_failures"`
	ByResultCode map[string]uint64 `json:"by_result_code"`
	ByMove       map[string]uint64 `json:"by_move"`
}

type Recorder struct {
	mu           sync.Mutex
	success      uint64
	conflict     uint64
	failure      uint64
	replans      uint64
	planFailures uint64
	byResult     map[string]uint64
	byMove       map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byResult: map[string]uint64{},
		byMove:   map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(resultCode drive.ResultCode, move string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byResult[string(resultCode)]++
	r.byMove[move]++
}

func (r *Recorder) RecordReplan() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replans++
}

func (r *Recorder) RecordPlanFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planFailures++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		TickSuccess:  r.success,
		TickConflict: r.conflict,
		TickFailure:  r.failure,
		TickTotal:    r.success + r.conflict + r.failure,
		Replans:      r.replans,
		PlanFailures: r.planFailures,
		ByResultCode: make(map[string]uint64, len(r.byResult)),
		ByMove:       make(map[string]uint64, len(r.byMove)),
	}
	for k, v := range r.byResult {
		out.ByResultCode[k] = v
	}
	for k, v := range r.byMove {
		out.ByMove[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
