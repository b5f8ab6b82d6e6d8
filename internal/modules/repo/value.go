package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var cellConflictColumns = []clause.Column{{Name: "university_id"}, {Name: "column_key"}, {Name: "view_id"}}

type ValueRepo interface {
	Get(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.Value, error)
	ListByView(ctx context.Context, viewID uint) ([]model.Value, error)
	Upsert(ctx context.Context, universityID uint, columnKey string, viewID uint, value *string) (*model.Value, error)
	DeleteByColumn(ctx context.Context, viewID uint, columnKey string) (int64, error)
	DeleteByUniversity(ctx context.Context, universityID uint) (int64, error)
}

type valueRepo struct{ db *gorm.DB }

func NewValueRepo(db *gorm.DB) ValueRepo {
	return &valueRepo{db: db}
}

func (r *valueRepo) Get(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.Value, error) {
	var v model.Value
	err := r.db.WithContext(ctx).
		Where("university_id = ? AND column_key = ? AND view_id = ?", universityID, columnKey, viewID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *valueRepo) ListByView(ctx context.Context, viewID uint) ([]model.Value, error) {
	var vals []model.Value
	return vals, r.db.WithContext(ctx).Where("view_id = ?", viewID).Order("id ASC").Find(&vals).Error
}

// Upsert writes the cell in a single INSERT ... ON CONFLICT statement so two
// writers of the same cell never produce two rows. The last write wins.
func (r *valueRepo) Upsert(ctx context.Context, universityID uint, columnKey string, viewID uint, value *string) (*model.Value, error) {
	v := model.Value{
		UniversityID: universityID,
		ColumnKey:    columnKey,
		ViewID:       viewID,
		Value:        value,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   cellConflictColumns,
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&v).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, universityID, columnKey, viewID)
}

// DeleteByColumn removes every cell stored under columnKey in the view. Column
// deletion calls it on the transaction that removes the column.
func (r *valueRepo) DeleteByColumn(ctx context.Context, viewID uint, columnKey string) (int64, error) {
	res := r.db.WithContext(ctx).Where("view_id = ? AND column_key = ?", viewID, columnKey).Delete(&model.Value{})
	return res.RowsAffected, res.Error
}

// DeleteByUniversity removes the university's cells in every view.
func (r *valueRepo) DeleteByUniversity(ctx context.Context, universityID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("university_id = ?", universityID).Delete(&model.Value{})
	return res.RowsAffected, res.Error
}
