package gormrepo

import (
	"context"
	"errors"
	"time"

	"driveyard/internal/adapter/repo/gorm/model"
	"driveyard/internal/app/ports"
	"driveyard/internal/domain/drive"
	"driveyard/internal/domain/grid"

	"gorm.io/gorm"
)

type DriveStateRepo struct {
	db *gorm.DB
}

func NewDriveStateRepo(db *gorm.DB) DriveStateRepo {
	return DriveStateRepo{db: db}
}

func (r DriveStateRepo) GetByDriveID(ctx context.Context, driveID string) (drive.StateAggregate, error) {
	var m model.DriveState
	if err := getDBFromCtx(ctx, r.db).Where("drive_id = ?", driveID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return drive.StateAggregate{}, ports.ErrNotFound
		}
		return drive.StateAggregate{}, err
	}
	return drive.StateAggregate{
		DriveID:   driveID,
		SessionID: m.SessionID,
		Mode:      drive.Mode(m.Mode),
		Pos:       grid.State{X: int(m.X), Y: int(m.Y)},
		Tick:      m.Tick,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r DriveStateRepo) SaveWithVersion(ctx context.Context, state drive.StateAggregate, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	if expectedVersion == 0 {
		m := model.DriveState{
			DriveID:   state.DriveID,
			SessionID: state.SessionID,
			Mode:      string(state.Mode),
			X:         int32(state.Pos.X),
			Y:         int32(state.Pos.Y),
			Tick:      state.Tick,
			Version:   state.Version,
			UpdatedAt: state.UpdatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"session_id": state.SessionID,
		"mode":       string(state.Mode),
		"x":          int32(state.Pos.X),
		"y":          int32(state.Pos.Y),
		"tick":       state.Tick,
		"version":    state.Version,
		"updated_at": time.Now().UTC(),
	}

	res := db.Model(&model.DriveState{}).
		Where("drive_id = ? AND version = ?", state.DriveID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
