package repo

import (
	"context"
	"errors"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
)

type DocumentRepo interface {
	List(ctx context.Context) ([]model.Document, error)
	Get(ctx context.Context, id uint) (*model.Document, error)
	Create(ctx context.Context, d *model.Document) error
	Delete(ctx context.Context, id uint) (*model.Document, error)
}

type documentRepo struct{ db *gorm.DB }

func NewDocumentRepo(db *gorm.DB) DocumentRepo {
	return &documentRepo{db: db}
}

// List omits file contents.
func (r *documentRepo) List(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	return docs, r.db.WithContext(ctx).
		Omit("file_data").
		Order("uploaded_at DESC, id DESC").
		Find(&docs).Error
}

func (r *documentRepo) Get(ctx context.Context, id uint) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *documentRepo) Create(ctx context.Context, d *model.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// Delete removes the row and returns it so the caller can release its blob.
// A missing id yields (nil, nil).
func (r *documentRepo) Delete(ctx context.Context, id uint) (*model.Document, error) {
	var d model.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&model.Document{}, d.ID).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
