package gormrepo

import (
	"context"
	"encoding/json"
	"errors"

	"driveyard/internal/adapter/repo/gorm/model"
	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"

	"gorm.io/gorm"
)

type TickExecutionRepo struct {
	db *gorm.DB
}

func NewTickExecutionRepo(db *gorm.DB) TickExecutionRepo {
	return TickExecutionRepo{db: db}
}

func (r TickExecutionRepo) GetByIdempotencyKey(ctx context.Context, driveID, key string) (*ports.TickRecord, error) {
	var m model.TickExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.TickExecution{DriveID: driveID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var state drive.StateAggregate
	_ = json.Unmarshal(m.State, &state)
	return &ports.TickRecord{
		DriveID:        m.DriveID,
		IdempotencyKey: m.IdempotencyKey,
		Move:           m.Move,
		ResultCode:     drive.ResultCode(m.ResultCode),
		Held:           m.Held,
		Replanned:      m.Replanned,
		PlanRemaining:  int(m.PlanRemaining),
		State:          state,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r TickExecutionRepo) SaveExecution(ctx context.Context, record ports.TickRecord) error {
	stateJSON, _ := json.Marshal(record.State)
	m := model.TickExecution{
		DriveID:        record.DriveID,
		IdempotencyKey: record.IdempotencyKey,
		Move:           record.Move,
		ResultCode:     string(record.ResultCode),
		Held:           record.Held,
		Replanned:      record.Replanned,
		PlanRemaining:  int32(record.PlanRemaining),
		State:          stateJSON,
		AppliedAt:      record.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
