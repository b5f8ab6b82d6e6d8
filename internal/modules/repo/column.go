package repo

import (
	"context"
	"errors"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
)

type ColumnRepo interface {
	ListByView(ctx context.Context, viewID uint, visibleOnly bool) ([]model.Column, error)
	Get(ctx context.Context, id uint) (*model.Column, error)
	GetByKey(ctx context.Context, viewID uint, key string) (*model.Column, error)
	Create(ctx context.Context, c *model.Column) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Column, error)
	Delete(ctx context.Context, id uint) (*model.Column, error)
}

type columnRepo struct{ db *gorm.DB }

func NewColumnRepo(db *gorm.DB) ColumnRepo {
	return &columnRepo{db: db}
}

// ListByView returns the view's columns by order_index, ties broken by
// insertion order.
func (r *columnRepo) ListByView(ctx context.Context, viewID uint, visibleOnly bool) ([]model.Column, error) {
	q := r.db.WithContext(ctx).Where("view_id = ?", viewID)
	if visibleOnly {
		q = q.Where("visible = ?", true)
	}
	var cols []model.Column
	return cols, q.Order("order_index ASC, id ASC").Find(&cols).Error
}

func (r *columnRepo) Get(ctx context.Context, id uint) (*model.Column, error) {
	var c model.Column
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *columnRepo) GetByKey(ctx context.Context, viewID uint, key string) (*model.Column, error) {
	var c model.Column
	if err := r.db.WithContext(ctx).Where("view_id = ? AND key = ?", viewID, key).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *columnRepo) Create(ctx context.Context, c *model.Column) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *columnRepo) Update(ctx context.Context, id uint, updates map[string]interface{}) (*model.Column, error) {
	var c model.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&c).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&c).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the column and every cell value and format stored under its
// key in the same view. It returns the removed column, or nil when id does
// not exist.
func (r *columnRepo) Delete(ctx context.Context, id uint) (*model.Column, error) {
	var c model.Column
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&c).Error; err != nil {
			return err
		}
		if _, err := NewValueRepo(tx).DeleteByColumn(ctx, c.ViewID, c.Key); err != nil {
			return err
		}
		if _, err := NewCellFormatRepo(tx).DeleteByColumn(ctx, c.ViewID, c.Key); err != nil {
			return err
		}
		return tx.Delete(&model.Column{}, c.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
