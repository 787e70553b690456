package ports

import "driveyard/internal/domain/drive"

type TickMetrics interface {
	RecordSuccess(resultCode drive.ResultCode, move string)
	RecordReplan()
	RecordPlanFailure()
	RecordConflict()
	RecordFailure()
}
