package service

import (
	"context"
	"errors"
	"strings"

	"github.com/unidash/unidash/internal/modules/model"
	"github.com/unidash/unidash/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ValueService interface {
	// GetCell returns (nil, nil) when the cell has never been written.
	GetCell(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.Value, error)
	ListForView(ctx context.Context, viewID uint) ([]model.Value, error)
	Upsert(ctx context.Context, in UpsertCellInput) (*model.Value, error)
}

type valueService struct {
	vals  repo.ValueRepo
	views repo.ViewRepo
	unis  repo.UniversityRepo
	cache ViewCache
	log   *zap.Logger
}

func NewValueService(vals repo.ValueRepo, views repo.ViewRepo, unis repo.UniversityRepo, cache ViewCache, log *zap.Logger) ValueService {
	return &valueService{vals: vals, views: views, unis: unis, cache: cache, log: log}
}

type UpsertCellInput struct {
	UniversityID uint    `json:"university_id"`
	ColumnKey    string  `json:"column_key"`
	ViewID       uint    `json:"view_id"`
	Value        *string `json:"value"`
}

func (s *valueService) GetCell(ctx context.Context, universityID uint, columnKey string, viewID uint) (*model.Value, error) {
	v, err := s.vals.Get(ctx, universityID, columnKey, viewID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateErr(err, "value", columnKey)
	}
	return v, nil
}

func (s *valueService) ListForView(ctx context.Context, viewID uint) ([]model.Value, error) {
	vals, err := s.vals.ListByView(ctx, viewID)
	return vals, translateErr(err, "view", viewID)
}

// Upsert stores the cell text as given. The text is not checked against the
// column type and no history entry is written.
func (s *valueService) Upsert(ctx context.Context, in UpsertCellInput) (*model.Value, error) {
	key := strings.TrimSpace(in.ColumnKey)
	if key == "" {
		return nil, validationErr("column_key is required")
	}
	if in.UniversityID == 0 || in.ViewID == 0 {
		return nil, validationErr("university_id and view_id are required")
	}
	if _, err := s.views.Get(ctx, in.ViewID); err != nil {
		return nil, translateErr(err, "view", in.ViewID)
	}
	if _, err := s.unis.Get(ctx, in.UniversityID); err != nil {
		return nil, translateErr(err, "university", in.UniversityID)
	}

	v, err := s.vals.Upsert(ctx, in.UniversityID, key, in.ViewID, in.Value)
	if err != nil {
		return nil, translateErr(err, "value", key)
	}
	invalidateView(ctx, s.cache, s.log, in.ViewID)
	return v, nil
}
