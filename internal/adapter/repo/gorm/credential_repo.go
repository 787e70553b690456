package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"driveyard/internal/adapter/repo/gorm/model"
	"driveyard/internal/app/ports"

	"gorm.io/gorm"
)

type DriveCredentialRepo struct {
	db *gorm.DB
}

func NewDriveCredentialRepo(db *gorm.DB) DriveCredentialRepo {
	return DriveCredentialRepo{db: db}
}

func (r DriveCredentialRepo) Create(ctx context.Context, credential ports.DriveCredentialRecord) error {
	row := model.DriveCredential{
		DriveID:   credential.DriveID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := getDBFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r DriveCredentialRepo) GetByDriveID(ctx context.Context, driveID string) (ports.DriveCredentialRecord, error) {
	var row model.DriveCredential
	if err := getDBFromCtx(ctx, r.db).Where(&model.DriveCredential{DriveID: driveID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.DriveCredentialRecord{}, ports.ErrNotFound
		}
		return ports.DriveCredentialRecord{}, err
	}
	return ports.DriveCredentialRecord{
		DriveID:   row.DriveID,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
