package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
)

type ViewRepo interface {
	List(ctx context.Context) ([]model.View, error)
	Get(ctx context.Context, id uint) (*model.View, error)
	GetByName(ctx context.Context, name string) (*model.View, error)
	Create(ctx context.Context, v *model.View) error
	CreateWithContent(ctx context.Context, v *model.View, cols []model.Column, vals []model.Value) error
	Delete(ctx context.Context, id uint) error
}

type viewRepo struct{ db *gorm.DB }

func NewViewRepo(db *gorm.DB) ViewRepo {
	return &viewRepo{db: db}
}

func (r *viewRepo) List(ctx context.Context) ([]model.View, error) {
	var views []model.View
	return views, r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&views).Error
}

func (r *viewRepo) Get(ctx context.Context, id uint) (*model.View, error) {
	var v model.View
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *viewRepo) GetByName(ctx context.Context, name string) (*model.View, error) {
	var v model.View
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *viewRepo) Create(ctx context.Context, v *model.View) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// CreateWithContent inserts the view together with its columns and cell
// values in one transaction. ViewID on cols and vals is overwritten.
func (r *viewRepo) CreateWithContent(ctx context.Context, v *model.View, cols []model.Column, vals []model.Value) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		for i := range cols {
			cols[i].ID = 0
			cols[i].ViewID = v.ID
		}
		if len(cols) > 0 {
			if err := tx.CreateInBatches(cols, 100).Error; err != nil {
				return err
			}
		}
		for i := range vals {
			vals[i].ID = 0
			vals[i].ViewID = v.ID
		}
		if len(vals) > 0 {
			if err := tx.CreateInBatches(vals, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the view and everything scoped to it. Deleting a missing
// view is a no-op.
func (r *viewRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Value{}, &model.CellFormat{}, &model.ValueHistory{}, &model.Column{}} {
			if err := tx.Where("view_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&model.View{}).Error
	})
}
