package gormrepo

import (
	"context"
	"encoding/json"
	"time"

	"driveyard/internal/adapter/repo/gorm/model"
	"driveyard/internal/domain/field"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FieldLayoutRepo struct {
	db *gorm.DB
}

func NewFieldLayoutRepo(db *gorm.DB) FieldLayoutRepo {
	return FieldLayoutRepo{db: db}
}

func (r FieldLayoutRepo) Get(ctx context.Context, name string) (field.Layout, bool, error) {
	var row model.FieldLayout
	err := getDBFromCtx(ctx, r.db).Where("name = ?", name).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return field.Layout{}, false, nil
		}
		return field.Layout{}, false, err
	}
	var layout field.Layout
	if err := json.Unmarshal(row.Spec, &layout); err != nil {
		return field.Layout{}, false, err
	}
	return layout, true, nil
}

func (r FieldLayoutRepo) Save(ctx context.Context, name string, layout field.Layout) error {
	b, err := json.Marshal(layout)
	if err != nil {
		return err
	}
	row := model.FieldLayout{
		Name:      name,
		Spec:      b,
		UpdatedAt: time.Now(),
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"spec", "updated_at"}),
	}).Create(&row).Error
}
