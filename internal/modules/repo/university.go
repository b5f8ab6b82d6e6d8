package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
)

type UniversityRepo interface {
	List(ctx context.Context) ([]model.University, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.University, error)
	Get(ctx context.Context, id uint) (*model.University, error)
	GetByName(ctx context.Context, name string) (*model.University, error)
	Create(ctx context.Context, u *model.University) error
	Update(ctx context.Context, u *model.University) error
	Delete(ctx context.Context, id uint) error
}

type universityRepo struct{ db *gorm.DB }

func NewUniversityRepo(db *gorm.DB) UniversityRepo {
	return &universityRepo{db: db}
}

func (r *universityRepo) List(ctx context.Context) ([]model.University, error) {
	var unis []model.University
	return unis, r.db.WithContext(ctx).Order("id ASC").Find(&unis).Error
}

func (r *universityRepo) ListByIDs(ctx context.Context, ids []uint) ([]model.University, error) {
	var unis []model.University
	if len(ids) == 0 {
		return unis, nil
	}
	return unis, r.db.WithContext(ctx).Where("id IN ?", ids).Order("id ASC").Find(&unis).Error
}

func (r *universityRepo) Get(ctx context.Context, id uint) (*model.University, error) {
	var u model.University
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *universityRepo) GetByName(ctx context.Context, name string) (*model.University, error) {
	var u model.University
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *universityRepo) Create(ctx context.Context, u *model.University) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Update overwrites the descriptive fields of an existing university.
func (r *universityRepo) Update(ctx context.Context, u *model.University) error {
	res := r.db.WithContext(ctx).Model(&model.University{}).Where("id = ?", u.ID).
		Select("name", "country", "state", "city", "type", "website", "notes", "updated_at").
		Updates(u)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the university with its cells, formats and history.
func (r *universityRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := NewValueRepo(tx).DeleteByUniversity(ctx, id); err != nil {
			return err
		}
		if _, err := NewCellFormatRepo(tx).DeleteByUniversity(ctx, id); err != nil {
			return err
		}
		if _, err := NewHistoryRepo(tx).DeleteByUniversity(ctx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.University{}).Error
	})
}
