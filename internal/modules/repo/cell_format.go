package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CellFormatRepo interface {
	ListByView(ctx context.Context, viewID uint) ([]model.CellFormat, error)
	Get(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.CellFormat, error)
	Save(ctx context.Context, f *model.CellFormat) error
	Delete(ctx context.Context, universityID uint, columnKey string, viewID uint) error
	DeleteByColumn(ctx context.Context, viewID uint, columnKey string) (int64, error)
	DeleteByUniversity(ctx context.Context, universityID uint) (int64, error)
}

type cellFormatRepo struct{ db *gorm.DB }

func NewCellFormatRepo(db *gorm.DB) CellFormatRepo {
	return &cellFormatRepo{db: db}
}

func (r *cellFormatRepo) ListByView(ctx context.Context, viewID uint) ([]model.CellFormat, error) {
	var items []model.CellFormat
	return items, r.db.WithContext(ctx).Where("view_id = ?", viewID).Order("id ASC").Find(&items).Error
}

func (r *cellFormatRepo) Get(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.CellFormat, error) {
	var f model.CellFormat
	err := r.db.WithContext(ctx).
		Where("university_id = ? AND column_key = ? AND view_id = ?", universityID, columnKey, viewID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes every attribute of f for its cell, inserting or replacing.
func (r *cellFormatRepo) Save(ctx context.Context, f *model.CellFormat) error {
	f.ID = 0
	cols := append([]string{}, model.CellFormatAttributeColumns...)
	cols = append(cols, "updated_at")
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   cellConflictColumns,
		DoUpdates: clause.AssignmentColumns(cols),
	}).Create(f).Error
}

func (r *cellFormatRepo) Delete(ctx context.Context, universityID uint, columnKey string, viewID uint) error {
	return r.db.WithContext(ctx).
		Where("university_id = ? AND column_key = ? AND view_id = ?", universityID, columnKey, viewID).
		Delete(&model.CellFormat{}).Error
}

func (r *cellFormatRepo) DeleteByColumn(ctx context.Context, viewID uint, columnKey string) (int64, error) {
	res := r.db.WithContext(ctx).Where("view_id = ? AND column_key = ?", viewID, columnKey).Delete(&model.CellFormat{})
	return res.RowsAffected, res.Error
}

func (r *cellFormatRepo) DeleteByUniversity(ctx context.Context, universityID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("university_id = ?", universityID).Delete(&model.CellFormat{})
	return res.RowsAffected, res.Error
}
