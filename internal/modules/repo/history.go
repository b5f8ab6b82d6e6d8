package repo

import (
	"context"

	"github.com/unidash/unidash/internal/modules/model"
	"gorm.io/gorm"
)

type HistoryRepo interface {
	Create(ctx context.Context, h *model.ValueHistory) error
	ListByUniversity(ctx context.Context, universityID uint) ([]model.ValueHistory, error)
	DeleteByUniversity(ctx context.Context, universityID uint) (int64, error)
}

type historyRepo struct{ db *gorm.DB }

func NewHistoryRepo(db *gorm.DB) HistoryRepo {
	return &historyRepo{db: db}
}

func (r *historyRepo) Create(ctx context.Context, h *model.ValueHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

// ListByUniversity returns the ledger newest first.
func (r *historyRepo) ListByUniversity(ctx context.Context, universityID uint) ([]model.ValueHistory, error) {
	var items []model.ValueHistory
	return items, r.db.WithContext(ctx).
		Where("university_id = ?", universityID).
		Order("timestamp DESC, id DESC").
		Find(&items).Error
}

func (r *historyRepo) DeleteByUniversity(ctx context.Context, universityID uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("university_id = ?", universityID).Delete(&model.ValueHistory{})
	return res.RowsAffected, res.Error
}
